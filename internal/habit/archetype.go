package habit

import (
	"context"

	"github.com/existflow/glow/internal/logger"
	"github.com/existflow/glow/internal/model"
	"github.com/existflow/glow/internal/store"
)

// AdoptResult reports what adopting an archetype actually created.
// Individual creation failures are skipped, so the result can be a
// partial application of the template.
type AdoptResult struct {
	Identities []model.Identity
	Tasks      []model.Task
	Skipped    []string
}

// AdoptArchetype instantiates a catalog entry: one identity per
// default identity name, then one task per template habit, each
// tagged with every identity that was actually created. Template
// tasks default to Monday at 09:00 on the daily page.
func (s *Service) AdoptArchetype(ctx context.Context, archetypeID string) (AdoptResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var arch *model.Archetype
	for i := range s.archetypes {
		if s.archetypes[i].ID == archetypeID {
			arch = &s.archetypes[i]
			break
		}
	}
	if arch == nil {
		return AdoptResult{}, store.ErrNotFound
	}

	var result AdoptResult
	for _, name := range arch.DefaultIdentities {
		identity, err := s.addIdentityLocked(ctx, name, arch.Emoji)
		if err != nil {
			logger.Warn("Skipping identity from archetype",
				logger.F("archetype", arch.Name),
				logger.F("identity", name),
				logger.F("error", err))
			result.Skipped = append(result.Skipped, name)
			continue
		}
		result.Identities = append(result.Identities, identity)
	}

	tags := make([]string, 0, len(result.Identities))
	for _, identity := range result.Identities {
		tags = append(tags, identity.ID)
	}

	for _, tmpl := range arch.TemplateHabits {
		task := model.Task{
			Title:            tmpl.Title,
			Category:         arch.Name,
			Page:             model.PageDaily,
			Weekdays:         []model.Weekday{model.Monday},
			Schedule:         model.At("09:00"),
			IdentityTags:     tags,
			TwoMinuteVersion: tmpl.TwoMinuteVersion,
			Recurrence:       model.Recurrence{Kind: model.RecurrenceNone, Day: model.Monday},
		}
		saved, err := s.store.InsertTask(ctx, task)
		if err != nil {
			logger.Warn("Skipping habit from archetype",
				logger.F("archetype", arch.Name),
				logger.F("habit", tmpl.Title),
				logger.F("error", err))
			result.Skipped = append(result.Skipped, tmpl.Title)
			continue
		}
		s.tasks = append(s.tasks, saved)
		result.Tasks = append(result.Tasks, saved)
	}

	logger.Info("Archetype adopted",
		logger.F("archetype", arch.Name),
		logger.F("identities", len(result.Identities)),
		logger.F("tasks", len(result.Tasks)),
		logger.F("skipped", len(result.Skipped)))
	return result, nil
}
