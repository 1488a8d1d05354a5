package devtools

import (
	"context"

	"baackground/internal/content"
)

type Demo interface {
	Resolve(name string) Scenario
	SetState(ctx context.Context, cacheDir string, state string, rendered bool) error
	ScriptedAnswer(q content.Question, index int) string
}
