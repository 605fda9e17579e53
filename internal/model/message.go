package model

type Message struct {
	To      string
	Subject string
	Body    string

	// Template names the template that rendered the message, if any.
	Template string
}
