package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/sgsc/sgsc-services/internal/comm"
	log "github.com/sirupsen/logrus"
)

// Invalidator drops the cached collections embedding a table.
type Invalidator interface {
	ForTable(table string)
}

// Pusher forwards a message to the connected browsers.
type Pusher interface {
	Broadcast(msg *comm.WSMessage)
}

// Broker shares record-change events between service instances so each one
// can invalidate its own reference cache and feed its live clients.
type Broker struct {
	Conn       *nats.Conn
	instanceId string
	cache      Invalidator
	live       Pusher
}

// NewBroker accepts a nil conn; publishing is then a no-op.
func NewBroker(conn *nats.Conn, instanceId string, cache Invalidator, live Pusher) *Broker {
	return &Broker{
		Conn:       conn,
		instanceId: instanceId,
		cache:      cache,
		live:       live,
	}
}

func (b *Broker) InstanceId() string {
	return b.instanceId
}

// consume record changes from every instance
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) Publish(topic string, payload []byte) error {
	if b.Conn == nil {
		return nil
	}
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// PublishRecordChanged stamps ev with this instance and publishes it on
// comm.RecordsTopic.
func (b *Broker) PublishRecordChanged(ev comm.RecordChanged) error {
	ev.Instance = b.instanceId
	msg, err := comm.NewMessage(comm.TypeRecordChanged, ev)
	if err != nil {
		log.Errorf("unable to marshal record change %s/%s: %s", ev.Table, ev.ID, err)
		return err
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error %s", err)
		return err
	}

	return b.Publish(comm.RecordsTopic, payload)
}

// handleMessage applies changes published by other instances. Our own
// events were already applied before publishing.
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	if err := json.Unmarshal(msgNat.Data, msg); err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	switch msg.Type {
	case comm.TypeRecordChanged:
		ev := comm.RecordChanged{}
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			log.Errorf("Error decoding record change: %s", err)
			return
		}
		if ev.Instance == b.instanceId {
			return
		}
		log.Debugf("record change from %s: %s %s %s", ev.Instance, ev.Op, ev.Table, ev.ID)
		if b.cache != nil {
			b.cache.ForTable(ev.Table)
		}
		if b.live != nil {
			out, err := comm.NewMessage(comm.TypeRecordChanged, ev.Live())
			if err != nil {
				log.Errorf("Error encoding record change: %s", err)
				return
			}
			b.live.Broadcast(out)
		}
	default:
		log.Warnf("unknown message type on %s: %s", msgNat.Subject, msg.Type)
	}
}
