package greeter

// GreetForm is the form-encoded body of POST /greet.
type GreetForm struct {
	Name string `form:"name"`
}
