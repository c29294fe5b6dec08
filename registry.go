package symast

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SymbolicExpression is a sub-expression registered with a Context so it can
// be shared through ReferenceNode back-references. The Context owns it.
type SymbolicExpression struct {
	ID      uint64
	Comment string
	Node    Node
}

// Width returns the width of the registered node.
func (se *SymbolicExpression) Width() uint {
	return Width(se.Node)
}

// Register assigns the next sequential expression id to n and stores it.
// Expression ids are independent of variable ids.
func (c *Context) Register(n Node, comment string) (*SymbolicExpression, error) {
	if err := checkValue(REFERENCE, n); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	se := &SymbolicExpression{ID: c.nextExprID, Comment: comment, Node: n}
	c.exprs = c.exprs.Set(se.ID, se)
	c.nextExprID++
	c.logger.WithFields(logrus.Fields{"id": se.ID, "comment": comment}).Debug("new symbolic expression")
	return se, nil
}

// LookupSymbolicExpression returns the expression registered under id.
func (c *Context) LookupSymbolicExpression(id uint64) (*SymbolicExpression, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookup(id)
}

func (c *Context) lookup(id uint64) (*SymbolicExpression, bool) {
	v, ok := c.exprs.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*SymbolicExpression), true
}

// SymbolicExpressions returns every registered expression in id order.
func (c *Context) SymbolicExpressions() []*SymbolicExpression {
	c.mu.Lock()
	exprs := c.exprs
	c.mu.Unlock()

	a := make([]*SymbolicExpression, 0, exprs.Len())
	for itr := exprs.Iterator(); !itr.Done(); {
		_, v := itr.Next()
		a = append(a, v.(*SymbolicExpression))
	}
	return a
}

// Reference returns a back-reference to se. Returns ErrUnknownReference if se
// was not registered with this Context.
func (c *Context) Reference(se *SymbolicExpression) (Node, error) {
	if se == nil {
		return nil, errors.Wrap(ErrUnknownReference, "reference: nil expression")
	}

	c.mu.Lock()
	other, ok := c.lookup(se.ID)
	c.mu.Unlock()
	if !ok || other != se {
		return nil, errors.Wrapf(ErrUnknownReference, "reference: ref!%d is not registered in this context", se.ID)
	}
	return c.intern(&ReferenceNode{ID: se.ID, Width: se.Width()}), nil
}

// ReferenceByID returns a back-reference to the expression registered under id.
func (c *Context) ReferenceByID(id uint64) (Node, error) {
	se, ok := c.LookupSymbolicExpression(id)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownReference, "reference: ref!%d", id)
	}
	return c.Reference(se)
}
