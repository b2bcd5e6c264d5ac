package render

// View names the template to render for a response.
type View struct {
	// Name and Prefix locate the template, as in "home/index".
	Name   string
	Prefix string

	// Layout is the layout name under "layouts". Empty renders the view bare.
	Layout string

	Data   any
	Locals []string
}
