// Package flash carries one-shot notices from the request that produced them
// to the next page the browser renders.
package flash

import "net/http"

// Categories double as the CSS modifier of the rendered alert.
const (
	CategorySuccess = "success"
	CategoryInfo    = "info"
	CategoryWarning = "warning"
	CategoryDanger  = "danger"
)

type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

func Success(text string) Message { return Message{Category: CategorySuccess, Text: text} }
func Info(text string) Message    { return Message{Category: CategoryInfo, Text: text} }
func Warning(text string) Message { return Message{Category: CategoryWarning, Text: text} }
func Danger(text string) Message  { return Message{Category: CategoryDanger, Text: text} }

// Store queues messages for the browser that sent r. Pop returns the queued
// messages in insertion order and forgets them.
type Store interface {
	Add(w http.ResponseWriter, r *http.Request, msg Message) error
	Pop(w http.ResponseWriter, r *http.Request) ([]Message, error)
}
