package render

import (
	"encoding/json"
	"html/template"
)

// toJS embeds a Go value in a <script> block.
func toJS(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
