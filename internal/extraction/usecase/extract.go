package usecase

import (
	"context"
	"strings"
	"time"

	"voicetask/internal/extraction"
	"voicetask/internal/model"
	"voicetask/pkg/address"
	"voicetask/pkg/priority"
	"voicetask/pkg/segment"
)

// Extract runs the full pipeline: segment the transcript, then resolve dates,
// priority and address per fragment, carrying the last resolved date across
// fragments that have none of their own.
func (uc *implUseCase) Extract(ctx context.Context, sc model.Scope, input extraction.ExtractInput) (extraction.ExtractOutput, error) {
	if strings.TrimSpace(input.Transcript) == "" {
		return extraction.ExtractOutput{}, extraction.ErrEmptyTranscript
	}

	uc.l.Infof(ctx, "Extract: user=%s transcript_length=%d", sc.UserID, len(input.Transcript))

	fragments := segment.Split(input.Transcript)
	drafts := uc.extractDrafts(fragments, uc.now())

	uc.l.Infof(ctx, "Extract: %d fragments -> %d drafts", len(fragments), len(drafts))

	return extraction.ExtractOutput{
		Drafts:    drafts,
		TaskCount: len(drafts),
	}, nil
}

// extractDrafts folds the per-fragment parsers over fragments. The carried
// date is the only cross-fragment state: a fragment without its own temporal
// expression inherits the last resolved one.
func (uc *implUseCase) extractDrafts(fragments []string, now time.Time) []model.TaskDraft {
	drafts := make([]model.TaskDraft, 0, len(fragments))
	var carried *time.Time

	for _, frag := range fragments {
		hadRelativeMarker := uc.dates.HasRelativeDay(frag)

		dateRes, rest := uc.dates.Extract(frag, now)
		switch {
		case dateRes.Found:
			due := dateRes.Due
			carried = &due
		case hadRelativeMarker:
			// A relative-day word that failed to resolve must not let an
			// earlier fragment's date leak into this one.
			carried = nil
		}

		prioRes := priority.Extract(rest)
		addrRes := address.Extract(prioRes.Cleaned)

		title := strings.TrimSpace(addrRes.Cleaned)
		if !segment.IsTaskCandidate(title) {
			continue
		}

		draft := model.NewTaskDraft(capitalizeFirst(title))
		draft.Priority = prioRes.Priority
		draft.Address = addrRes.Address
		if carried != nil {
			due := *carried
			draft.DueAt = &due
		}
		drafts = append(drafts, draft)
	}
	return drafts
}
