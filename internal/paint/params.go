package paint

import (
	"strconv"

	"maskpaint/internal/core"
)

// BrushKey is the parameter key of the brush diameter.
const BrushKey = "brush"

// Parameters reports the tunables shown on the HUD.
func (s *Surface) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Brush",
			Params: []core.Parameter{{
				Key:         BrushKey,
				Label:       "Brush",
				Type:        core.ParamTypeInt,
				Value:       strconv.Itoa(s.brush()),
				Description: "Diameter of the stamped circle in pixels",
			}},
		},
	}}
}

// ParameterControls exposes the brush diameter as an adjustable control.
func (s *Surface) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{
		Key:    BrushKey,
		Label:  "Brush",
		Type:   core.ParamTypeInt,
		Step:   1,
		Min:    MinDiameter,
		Max:    MaxDiameter,
		HasMin: true,
		HasMax: true,
	}}
}

// SetIntParameter updates the brush diameter; other keys are rejected.
func (s *Surface) SetIntParameter(key string, value int) bool {
	if key != BrushKey {
		return false
	}
	s.SetBrushDiameter(value)
	return true
}
