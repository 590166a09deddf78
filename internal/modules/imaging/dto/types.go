package dto

type TransformInput struct {
	Path string
	Mode string
	// Out, when set, is where the result payload is written.
	Out string
}

type TransformOutput struct {
	Result  string
	DataURI bool
	SavedTo string
}
