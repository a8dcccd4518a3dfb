// Package drawing превращает последовательность нажатие/движение/отпускание в рамки разметки.
package drawing

import "fracture-tutor/internal/domain/entity"

// State состояние жеста рисования
type State string

const (
	StateIdle    State = "idle"    // Нет активного жеста
	StateDrawing State = "drawing" // Кнопка нажата, рамка растягивается
)

// Machine автомат одного жеста рисования рамки
type Machine struct {
	MinSize float64

	state  State
	anchor entity.Point
	box    entity.BoundingBox
}

// NewMachine создаёт автомат с порогом минимального размера рамки
func NewMachine(minSize float64) *Machine {
	if minSize <= 0 {
		minSize = entity.DefaultMinBoxSize
	}
	return &Machine{MinSize: minSize, state: StateIdle}
}

// State возвращает текущее состояние
func (m *Machine) State() State { return m.state }

// Begin начинает жест; повторное нажатие во время рисования ничего не меняет
func (m *Machine) Begin(p entity.Point) State {
	if m.state == StateDrawing {
		return m.state
	}
	m.state = StateDrawing
	m.anchor = p
	m.box = entity.BoundingBox{X: p.X, Y: p.Y}
	return m.state
}

// Update растягивает временную рамку до точки p
func (m *Machine) Update(p entity.Point) {
	if m.state != StateDrawing {
		return
	}
	m.box = entity.NormalizedBox(m.anchor, p)
}

// Provisional возвращает временную рамку, пока идёт рисование
func (m *Machine) Provisional() (entity.BoundingBox, bool) {
	if m.state != StateDrawing {
		return entity.BoundingBox{}, false
	}
	return m.box, true
}

// End завершает жест. false, если рамка слишком мала или жеста не было.
func (m *Machine) End() (entity.BoundingBox, bool) {
	if m.state != StateDrawing {
		return entity.BoundingBox{}, false
	}
	box := m.box
	m.reset()
	if !box.Valid(m.MinSize) {
		return entity.BoundingBox{}, false
	}
	return box, true
}

// Cancel прерывает жест (указатель ушёл с холста) по тем же правилам, что и End
func (m *Machine) Cancel() (entity.BoundingBox, bool) {
	return m.End()
}

func (m *Machine) reset() {
	m.state = StateIdle
	m.anchor = entity.Point{}
	m.box = entity.BoundingBox{}
}
