// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/koru/core"
)

func TestTime(t *testing.T) {
	c := qt.New(t)
	tm := core.NewTime(core.TimeConfiguration{FramesPerSecond: 50, EventPollDelay: 5})
	defer tm.Stop()

	c.Assert(tm.Fps(), qt.Equals, 50)
	c.Assert(tm.EventPollDelay(), qt.Equals, 5*time.Millisecond)
	select {
	case <-tm.FpsTicker().C:
	case <-time.After(time.Second):
		c.Fatal("fps ticker did not fire")
	}
	select {
	case <-tm.EventTicker().C:
	case <-time.After(time.Second):
		c.Fatal("event ticker did not fire")
	}
}

func TestTimeUnlimited(t *testing.T) {
	c := qt.New(t)
	tm := core.NewTime(core.TimeConfiguration{})
	defer tm.Stop()

	c.Assert(tm.Fps(), qt.Equals, 0)
	c.Assert(tm.EventPollDelay(), qt.Equals, time.Millisecond)
}
