package ast

// DecoratorArg is one argument to a decorator, positional or keyword.
type DecoratorArg struct {
	Name  *IdentNode // nil for a positional argument
	Value Expr
}

// Decorator is a `@name(args...)` or bare `@name` annotation attached to a
// function, model, class, trait, enum, or newtype declaration.
type Decorator struct {
	compositeNode
	Name *IdentNode
	Args []DecoratorArg
}

func NewDecorator(at Token, name *IdentNode, args []DecoratorArg, close Token) *Decorator {
	end := name.End()
	if close != 0 {
		end = close
	}
	return &Decorator{compositeNode: compositeNode{start: at, end: end}, Name: name, Args: args}
}
