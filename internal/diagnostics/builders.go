package diagnostics

import "fmt"

// The complete message vocabulary of the front-end. Every diagnostic a pass
// can emit is built here so tests can match against one place.

// Structural check

func StmtNotAllowed(what string) string {
	return fmt.Sprintf("%s is not allowed here", what)
}

func VarInitNotAllowed() string {
	return "variables at this level cannot be initialised"
}

func ExternalFuncHasBody() string {
	return "functions inside an external block cannot have a body"
}

func FuncMissingBody() string {
	return "functions outside an external block must have a body"
}

func ArgDefaultValue() string {
	return "arguments cannot have default values"
}

// Symbol definition

func Redefinition(name string) string {
	return fmt.Sprintf("redefinition of %s in the same scope", name)
}

// Type expressions

func NotAType(typeName string) string {
	return fmt.Sprintf("expression of type %s is not a type", typeName)
}

func VarOfTypeVoid() string {
	return "variables cannot have type void"
}

func ListParamCount() string {
	return "type list expects exactly 1 type parameter"
}

func FuncParamCount() string {
	return "type function expects at least 1 type parameter"
}

func NotParameterisable(typeName string) string {
	return fmt.Sprintf("type %s cannot be parameterised", typeName)
}

// Expressions

func NotDefined(name string) string {
	return fmt.Sprintf("%s is not defined", name)
}

func CannotConvert(from, to string) string {
	return fmt.Sprintf("cannot convert from type %s to type %s", from, to)
}

func CannotCast(from, to string) string {
	return fmt.Sprintf("cannot cast from type %s to type %s", from, to)
}

func UnaryOpUndefined(op, typeName string) string {
	return fmt.Sprintf("operator %s is not defined for type %s", op, typeName)
}

func BinaryOpUndefined(op, left, right string) string {
	return fmt.Sprintf("operator %s is not defined for types %s and %s", op, left, right)
}

func NotAssignable() string {
	return "cannot assign to this expression"
}

func MemberNotDefined(member, typeName string) string {
	return fmt.Sprintf("member %s is not defined on type %s", member, typeName)
}

func MemberOnNullable(member, typeName string) string {
	return fmt.Sprintf("cannot access member %s on value of type %s", member, typeName)
}

func SafeDerefNotNullable(typeName string) string {
	return fmt.Sprintf("operator ?. requires a nullable value, found type %s", typeName)
}

func NullDefaultNotNullable(typeName string) string {
	return fmt.Sprintf("operator ?? requires a nullable value, found type %s", typeName)
}

func CannotIndex(typeName string) string {
	return fmt.Sprintf("cannot index into type %s", typeName)
}

func IndexNotInt(typeName string) string {
	return fmt.Sprintf("index must be of type int, found type %s", typeName)
}

func CannotCall(typeName string) string {
	return fmt.Sprintf("cannot call value of type %s", typeName)
}

func NoMatchingOverload(name, argTypes string) string {
	return fmt.Sprintf("no overload of %s matches arguments of types %s", name, argTypes)
}

func AmbiguousOverload(name, argTypes string) string {
	return fmt.Sprintf("multiple overloads of %s match arguments of types %s", name, argTypes)
}

func OverloadNeedsContext() string {
	return "cannot resolve overloaded function without context"
}

func WrongArgCount(expected, found int) string {
	return fmt.Sprintf("wrong number of arguments: expected %d, found %d", expected, found)
}

func ListNeedsContext() string {
	return "cannot infer type of list literal"
}

func CannotInferFrom(typeName string) string {
	return fmt.Sprintf("cannot infer a type from an expression of type %s", typeName)
}

func ThisOutsideMember() string {
	return "this can only be used inside a member function"
}

// Statements

func ReturnNeedsValue() string {
	return "return statement must have a value"
}

func ReturnHasValueInVoid() string {
	return "return statement cannot have a value inside a void function"
}

func FreeTypeExpr() string {
	return "free expression cannot be a type"
}

func TestNotBool(typeName string) string {
	return fmt.Sprintf("test expression must be of type bool, found type %s", typeName)
}

// Flow validation

func UseBeforeDefinition(name string) string {
	return fmt.Sprintf("use of %s before its definition", name)
}

func DeadCode() string {
	return "dead code"
}

func MissingReturn() string {
	return "not all control paths return a value"
}

// Parser

func UnexpectedToken(found string) string {
	return fmt.Sprintf("unexpected token %s", found)
}

func ExpectedToken(expected, found string) string {
	return fmt.Sprintf("expected %s, found %s", expected, found)
}

// Lexer

func UnexpectedCharacter(ch rune) string {
	return fmt.Sprintf("unexpected character %q", ch)
}

func UnterminatedString() string {
	return "unterminated string literal"
}

func InvalidCharLiteral() string {
	return "invalid character literal"
}
