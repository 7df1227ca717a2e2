package quiz

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RenderAll renders every text field of questions with r, in parallel.
// The result keeps the input order.
func RenderAll(r TextRenderer, questions []Question) []Rendered {
	out := make([]Rendered, len(questions))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range questions {
		g.Go(func() error {
			out[i] = RenderOne(r, questions[i])
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	return out
}

// RenderOne renders the question text, each choice and the explanation.
func RenderOne(r TextRenderer, q Question) Rendered {
	choices := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		choices[i] = r.Render(c)
	}
	return Rendered{
		ID:          q.ID,
		Question:    r.Render(q.Question),
		Choices:     choices,
		Explanation: r.Render(q.Explanation),
	}
}
