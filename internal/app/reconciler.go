package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/kiosk/internal/nav"
)

const defaultReconcileInterval = time.Second

// Reconciler runs nav.Reconciler passes in the background.
type Reconciler struct {
	kick chan struct{}
}

// StartReconciler launches a goroutine that evaluates the reconciliation
// rule on every tick and on every Kick. It returns immediately.
func StartReconciler(ctx context.Context, sources nav.Sources, interval, retryBase time.Duration, logger logrus.FieldLogger) *Reconciler {
	if interval <= 0 {
		interval = defaultReconcileInterval
	}
	r := &Reconciler{kick: make(chan struct{}, 1)}
	rule := &nav.Reconciler{RetryBase: retryBase}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			reconcile(time.Now(), rule, sources, logger)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case <-r.kick:
			}
		}
	}()
	return r
}

// Kick requests an immediate pass. Kicks issued while one is pending
// collapse into it.
func (r *Reconciler) Kick() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

func reconcile(now time.Time, rule *nav.Reconciler, sources nav.Sources, logger logrus.FieldLogger) nav.Actions {
	actions := rule.Evaluate(now, sources.Inputs())
	if !actions.Any() {
		return actions
	}
	logger.WithFields(logrus.Fields{
		"fetch_profile":      actions.FetchProfile,
		"fetch_cart":         actions.FetchCart,
		"invalidate_profile": actions.InvalidateProfile,
		"invalidate_cart":    actions.InvalidateCart,
	}).Debug("reconcile")
	sources.Apply(actions)
	return actions
}
