package classify

import (
	"context"
	"log/slog"
	"path/filepath"

	"cubby/internal/category"
	"cubby/internal/logging"
	"cubby/internal/services/magic"
)

// Via identifies which stage of the pipeline produced a decision.
type Via string

const (
	// ViaContent means a keyword in the sniffed description matched.
	ViaContent Via = "content"
	// ViaExtension means the extension table matched.
	ViaExtension Via = "extension"
	// ViaFallback means nothing matched and the file landed in Others.
	ViaFallback Via = "fallback"
)

// Decision is the classification outcome for a single file. MIMEType and
// Description carry whatever the sniffer reported, even when the extension
// table made the call.
type Decision struct {
	Category    category.Name
	Via         Via
	MIMEType    string
	Description string
}

// Classifier assigns exactly one category to every file it sees. Content
// detection is consulted first when a sniffer is present; the extension table
// decides otherwise, with Others as the terminal fallback.
type Classifier struct {
	sniffer magic.Sniffer
	logger  *slog.Logger
}

// New builds a Classifier. A nil sniffer disables content detection and is
// valid; classification then runs on extensions alone.
func New(sniffer magic.Sniffer, logger *slog.Logger) *Classifier {
	return &Classifier{
		sniffer: sniffer,
		logger:  logging.NewComponentLogger(logger, "classifier"),
	}
}

// Classify determines the category for path. It is total: every input yields
// a decision, and sniffer failures degrade to extension matching rather than
// propagate.
func (c *Classifier) Classify(ctx context.Context, path string) Decision {
	decision := Decision{}

	if c.sniffer != nil {
		result, err := c.sniffer.Sniff(ctx, path)
		if err != nil {
			c.logger.Warn("content sniff failed; falling back to extension",
				logging.String(logging.FieldFile, filepath.Base(path)),
				logging.Error(err),
			)
		} else {
			decision.MIMEType = result.MIMEType
			decision.Description = result.Description
			if name, ok := category.MatchDescription(result.Description); ok {
				decision.Category = name
				decision.Via = ViaContent
				c.logDecision(path, decision)
				return decision
			}
		}
	}

	ext := filepath.Ext(path)
	decision.Category = category.FromExtension(ext)
	if decision.Category != category.Others {
		decision.Via = ViaExtension
	} else {
		decision.Via = ViaFallback
	}
	c.logDecision(path, decision)
	return decision
}

func (c *Classifier) logDecision(path string, decision Decision) {
	c.logger.Debug("classified",
		logging.String(logging.FieldFile, filepath.Base(path)),
		logging.String(logging.FieldCategory, string(decision.Category)),
		logging.String("via", string(decision.Via)),
	)
}
