package service

import (
	"context"
	"time"

	"github.com/sgsc/sgsc-services/internal/audit"
	"github.com/sgsc/sgsc-services/internal/comm"
	log "github.com/sirupsen/logrus"
)

type Invalidator interface {
	ForTable(table string)
}

type Pusher interface {
	Broadcast(msg *comm.WSMessage)
}

type Publisher interface {
	PublishRecordChanged(ev comm.RecordChanged) error
}

// Notifier fans a committed mutation out to the local reference cache, the
// live clients, the other instances and the audit trail. Any of them may be
// nil. Failures are logged and never reach the caller.
type Notifier struct {
	cache     Invalidator
	live      Pusher
	publisher Publisher
	audit     audit.Recorder
	now       func() time.Time
}

func NewNotifier(cache Invalidator, live Pusher, publisher Publisher, recorder audit.Recorder) *Notifier {
	return &Notifier{
		cache:     cache,
		live:      live,
		publisher: publisher,
		audit:     recorder,
		now:       time.Now,
	}
}

func (n *Notifier) RecordChanged(ctx context.Context, table, op, id string) {
	if n == nil {
		return
	}
	ev := comm.RecordChanged{Table: table, Op: op, ID: id, Actor: ActorFrom(ctx), At: n.now().UTC()}

	if n.cache != nil {
		n.cache.ForTable(table)
	}

	if n.live != nil {
		msg, err := comm.NewMessage(comm.TypeRecordChanged, ev.Live())
		if err != nil {
			log.Errorf("unable to encode record change %s/%s: %s", table, id, err)
		} else {
			n.live.Broadcast(msg)
		}
	}

	if n.publisher != nil {
		if err := n.publisher.PublishRecordChanged(ev); err != nil {
			log.WithError(err).Warnf("record change %s/%s not published", table, id)
		}
	}

	if n.audit != nil {
		entry := audit.Entry{Table: table, Op: op, RecordID: id, Actor: ev.Actor, At: ev.At}
		if err := n.audit.Record(ctx, entry); err != nil {
			log.WithError(err).Warn("audit entry dropped")
		}
	}
}

type actorKey struct{}

// WithActor tags ctx with the user performing the request.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFrom(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}
