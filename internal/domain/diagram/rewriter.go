package diagram

import "context"

// Rewriter replaces diagram source embedded in an answer with rendered content.
// applied is false whenever the collaborator declined or answered with an
// unexpected shape; callers keep the original text in that case.
type Rewriter interface {
	Rewrite(ctx context.Context, content string) (rewritten string, applied bool, err error)
}
