package services

import "github.com/comitanigiacomo/kanso-planner/internal/core/domain"

// Notifier receives committed changes, e.g. to fan them out to live
// clients. Publish must not block.
type Notifier interface {
	Publish(event domain.ChangeEvent)
}

type nopNotifier struct{}

func (nopNotifier) Publish(domain.ChangeEvent) {}
