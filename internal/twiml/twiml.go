// Package twiml renders the telephony provider's voice markup dialect.
// Webhook handlers build a Response verb by verb and return the rendered
// document; the provider executes the verbs in order.
package twiml

import (
	"encoding/xml"
	"strings"
)

type say struct {
	XMLName xml.Name `xml:"Say"`
	Text    string   `xml:",chardata"`
}

type pause struct {
	XMLName xml.Name `xml:"Pause"`
	Length  int      `xml:"length,attr"`
}

type redirect struct {
	XMLName xml.Name `xml:"Redirect"`
	Method  string   `xml:"method,attr"`
	URL     string   `xml:",chardata"`
}

type hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

type gather struct {
	XMLName       xml.Name `xml:"Gather"`
	Input         string   `xml:"input,attr"`
	Action        string   `xml:"action,attr"`
	Method        string   `xml:"method,attr"`
	Timeout       int      `xml:"timeout,attr"`
	Language      string   `xml:"language,attr"`
	SpeechTimeout string   `xml:"speechTimeout,attr"`
	BargeIn       bool     `xml:"bargeIn,attr"`
	Hints         string   `xml:"hints,attr,omitempty"`
}

// GatherOpts configures a speech-gather verb.
type GatherOpts struct {
	Action        string
	TimeoutSecs   int
	Language      string
	SpeechTimeout string
	Hints         []string
}

// Response is a voice markup document under construction.
type Response struct {
	verbs []any
}

// New creates an empty Response.
func New() *Response {
	return &Response{}
}

// Say speaks the given text.
func (r *Response) Say(text string) *Response {
	r.verbs = append(r.verbs, say{Text: text})
	return r
}

// Pause waits silently for the given number of seconds.
func (r *Response) Pause(seconds int) *Response {
	r.verbs = append(r.verbs, pause{Length: seconds})
	return r
}

// Redirect hands control to another webhook URL via POST.
func (r *Response) Redirect(url string) *Response {
	r.verbs = append(r.verbs, redirect{Method: "POST", URL: url})
	return r
}

// Hangup ends the call.
func (r *Response) Hangup() *Response {
	r.verbs = append(r.verbs, hangup{})
	return r
}

// Gather requests speech input. Verbs appended after Gather run only if the
// provider collects no input before the timeout.
func (r *Response) Gather(opts GatherOpts) *Response {
	r.verbs = append(r.verbs, gather{
		Input:         "speech",
		Action:        opts.Action,
		Method:        "POST",
		Timeout:       opts.TimeoutSecs,
		Language:      opts.Language,
		SpeechTimeout: opts.SpeechTimeout,
		BargeIn:       false,
		Hints:         strings.Join(opts.Hints, ","),
	})
	return r
}

type document struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []any
}

// Render returns the markup document as an XML string.
func (r *Response) Render() (string, error) {
	body, err := xml.Marshal(document{Verbs: r.verbs})
	if err != nil {
		return "", err
	}
	return xml.Header + string(body), nil
}
