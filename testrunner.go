package canopy

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Button string  `json:"button,omitempty"`
	Finger int     `json:"finger,omitempty"`
	Name   string  `json:"name,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner plays a scripted input sequence through a SyntheticInput, one
// step at a time. Attach to an EventSystem via SetTestRunner.
//
// Supported actions: click, rightclick, press, move, release, drag, scroll,
// touch (a tap), axis, button and wait.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	input     *SyntheticInput
}

var knownActions = map[string]bool{
	"click": true, "rightclick": true, "press": true, "move": true,
	"release": true, "drag": true, "scroll": true, "touch": true,
	"axis": true, "button": true, "wait": true,
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an EventSystem via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Button != "" {
			if _, err := parseButton(st.Button); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner that feeds in. The runner's step
// method is called from Update before input is polled, and in is
// registered as a poller.
func (s *EventSystem) SetTestRunner(runner *TestRunner, in *SyntheticInput) {
	runner.input = in
	s.testRunner = runner
	s.AddPoller(in)
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

func parseButton(name string) (InputButton, error) {
	switch name {
	case "", "left":
		return ButtonLeft, nil
	case "right":
		return ButtonRight, nil
	case "middle":
		return ButtonMiddle, nil
	}
	return ButtonLeft, fmt.Errorf("unknown button %q", name)
}

// step advances the test runner by one frame. Called from EventSystem.Update.
func (r *TestRunner) step(s *EventSystem) {
	if r.done || r.input == nil {
		return
	}
	in := r.input
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	b, _ := parseButton(st.Button)

	switch st.Action {
	case "click":
		in.InjectMousePress(b, st.X, st.Y)
		in.InjectMouseRelease(b, st.X, st.Y)
	case "rightclick":
		in.InjectRightClick(st.X, st.Y)
	case "press":
		in.InjectMousePress(b, st.X, st.Y)
	case "move":
		in.InjectMove(st.X, st.Y)
	case "release":
		in.InjectMouseRelease(b, st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "scroll":
		in.InjectScroll(st.DX, st.DY)
	case "touch":
		in.InjectTap(st.Finger, st.X, st.Y)
	case "axis":
		in.InjectAxis(st.Name, st.Value)
	case "button":
		in.InjectButton(st.Name)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	if s.debug {
		s.logger.Printf("test step %d: %s", r.cursor-1, st.Action)
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
