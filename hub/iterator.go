package hub

import (
	"github.com/guilherme-santos/famhub/internal"
)

type messageOrError struct {
	m   *internal.Message
	err error
}

type messageIterator struct {
	msgs    chan messageOrError
	current messageOrError
}

func newMessageIterator() *messageIterator {
	return &messageIterator{
		msgs: make(chan messageOrError, 16),
	}
}

func (it *messageIterator) Next() (ok bool) {
	it.current, ok = <-it.msgs
	if it.current.err != nil {
		return false
	}
	return ok
}

func (it *messageIterator) Message() *internal.Message {
	c := it.current
	if c.m == nil && c.err == nil {
		panic("hub: Message() called before Next()")
	}
	return c.m
}

func (it *messageIterator) Err() error {
	return it.current.err
}
