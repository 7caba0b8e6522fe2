package usecase

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ariadne/pkg/domain/model"
)

//go:embed prompt/grounded.md
var groundedPromptTmpl string

var groundedPrompt = template.Must(
	template.New("grounded").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}).Parse(groundedPromptTmpl),
)

// BuildGroundedPrompt renders the user's question together with search
// results into a single generation prompt. Callers must pass at least one
// result; a question with no results should go to the model as-is.
func BuildGroundedPrompt(question string, results []*model.SearchResult) (string, error) {
	if len(results) == 0 {
		return "", goerr.New("no search results to build grounded prompt")
	}

	data := struct {
		Question string
		Results  []*model.SearchResult
	}{
		Question: question,
		Results:  results,
	}

	var buf bytes.Buffer
	if err := groundedPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render grounded prompt")
	}

	return buf.String(), nil
}
