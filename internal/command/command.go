// Package command carries user commands from menus and buttons to the
// window that acts on them.
package command

import (
	"fmt"
	"reflect"

	"slidey/internal/logging"

	messagebus "github.com/vardius/message-bus"
)

// Topic names one kind of command.
type Topic string

const (
	SelectDirectory        Topic = "SelectDirectory"
	OpenDirectory          Topic = "OpenDirectory" // args: path string
	EnhanceImage           Topic = "EnhanceImage"
	RemoveEnhancement      Topic = "RemoveEnhancement"
	SmoothImage            Topic = "SmoothImage"
	RemoveSmoothing        Topic = "RemoveSmoothing"
	ScaleToNative          Topic = "ScaleToNative"
	ScaleToFill            Topic = "ScaleToFill"
	RotateClockwise        Topic = "RotateClockwise"
	RotateCounterClockwise Topic = "RotateCounterClockwise"
)

// Dispatcher runs fn on the UI goroutine.
type Dispatcher func(fn func())

// Broker fans commands out to subscribers over a message bus.
type Broker struct {
	bus      messagebus.MessageBus
	dispatch Dispatcher
	log      *logging.Logger
}

// NewBroker creates a broker whose per-subscriber queues hold queueSize
// messages. GUI subscribers are called through dispatch; a nil dispatch
// calls them directly.
func NewBroker(queueSize int, dispatch Dispatcher, log *logging.Logger) *Broker {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Broker{
		bus:      messagebus.New(queueSize),
		dispatch: dispatch,
		log:      log,
	}
}

// Subscribe calls fn on the bus goroutine for every message on topic. fn
// must be a function whose parameters match what publishers send.
func (b *Broker) Subscribe(topic Topic, fn interface{}) error {
	if err := b.bus.Subscribe(string(topic), fn); err != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	return nil
}

// ConnectToGui is Subscribe with delivery moved onto the UI goroutine.
func (b *Broker) ConnectToGui(topic Topic, callback interface{}) error {
	fn := reflect.ValueOf(callback)
	if fn.Kind() != reflect.Func {
		return fmt.Errorf("subscribing to %s: callback is %T, not a func", topic, callback)
	}
	cb := func(params ...interface{}) {
		b.dispatch(func() {
			args := make([]reflect.Value, 0, len(params))
			for _, param := range params {
				args = append(args, reflect.ValueOf(param))
			}
			b.log.Debug().Str("topic", string(topic)).Int("args", len(args)).Msg("delivering command")
			fn.Call(args)
		})
	}
	return b.Subscribe(topic, cb)
}

// Publish sends a command to every subscriber of topic.
func (b *Broker) Publish(topic Topic, args ...interface{}) {
	b.log.Debug().Str("topic", string(topic)).Msg("publishing command")
	b.bus.Publish(string(topic), args...)
}
