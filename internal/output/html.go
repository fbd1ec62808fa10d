package output

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	errorRenderMarkdown = "render markdown: %w"

	htmlDocumentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Documentation for %[1]s</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; margin: 0 auto; max-width: 900px; padding: 20px; }
h1, h2, h3 { color: #333; }
code { background-color: #f4f4f4; padding: 2px 5px; border-radius: 3px; }
pre { background-color: #f4f4f4; padding: 10px; border-radius: 5px; overflow-x: auto; }
</style>
</head>
<body>
<h1>Documentation for %[1]s</h1>
<div class="content">
%[2]s</div>
</body>
</html>
`
)

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTMLDocument converts the Markdown reply into a standalone HTML page
// titled after baseName. Raw HTML inside the reply is not passed through.
func RenderHTMLDocument(baseName string, markdownContent string) (string, error) {
	var rendered bytes.Buffer
	if convertError := markdownRenderer.Convert([]byte(markdownContent), &rendered); convertError != nil {
		return "", fmt.Errorf(errorRenderMarkdown, convertError)
	}
	return fmt.Sprintf(htmlDocumentTemplate, html.EscapeString(baseName), rendered.String()), nil
}
