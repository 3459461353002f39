package insights

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/pennywise-ai/pennywise/internal/domain"
)

// chatContextLimit mirrors the number of numbered rows the prompt builder
// includes; extracted markers above this are ignored.
const chatContextLimit = 20

var referenceMarker = regexp.MustCompile(`\[(\d+)\]`)

// Chat answers a free-text question about the ledger. ref anchors the
// "current month" statistics in the prompt. The reply's bracketed numeric
// markers are resolved back to transaction IDs; the text keeps the markers
// so a UI can link them. Never returns an error.
func (s *Service) Chat(ctx context.Context, query string, txs []domain.Transaction, ref time.Time) domain.ChatReply {
	if s.gen == nil {
		return domain.ChatReply{Text: FallbackChatText, References: []string{}}
	}

	text, err := s.gen.Chat(ctx, query, txs, ref)
	if err != nil {
		s.log.Warn().Err(err).Msg("Chat generation failed, using fallback")
		return domain.ChatReply{Text: FallbackChatText, References: []string{}}
	}

	return domain.ChatReply{
		Text:       text,
		References: resolveReferences(text, txs),
	}
}

// resolveReferences scans bracketed numeric markers like [3] out of a reply
// and maps them to the IDs of the numbered context rows (1-based over the
// last chatContextLimit transactions). Markers that point outside the window
// are dropped; duplicates are collapsed, first mention wins.
func resolveReferences(text string, txs []domain.Transaction) []string {
	window := txs
	if len(window) > chatContextLimit {
		window = window[len(window)-chatContextLimit:]
	}

	refs := []string{}
	seen := make(map[string]bool)
	for _, m := range referenceMarker.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(window) {
			continue
		}
		id := window[n-1].ID
		if seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, id)
	}
	return refs
}
