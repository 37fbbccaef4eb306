package fov

import "sort"

// SubtractRects removes the occluder rectangles from the view rectangle and
// returns a disjoint covering of what remains. The covering is exact but not
// minimal; a minimal decomposition is NP-hard and the caster only needs a
// correct one to recurse on.
//
// Each occluder splits every intersecting working rectangle into up to four
// disjoint pieces: the left strip, the right strip, and the top and bottom
// strips of the middle column.
func SubtractRects(view Rect, occluders []Rect) []Rect {
	if !view.IsValid() {
		return nil
	}

	work := []Rect{view}

	for _, o := range occluders {
		var next []Rect

		for _, r := range work {
			cut, ok := r.Intersection(o)
			if !ok {
				next = append(next, r)
				continue
			}

			pieces := [4]Rect{
				{Sx: r.Sx, Sy: r.Sy, Ex: cut.Sx, Ey: r.Ey},
				{Sx: cut.Ex, Sy: r.Sy, Ex: r.Ex, Ey: r.Ey},
				{Sx: cut.Sx, Sy: cut.Ey, Ex: cut.Ex, Ey: r.Ey},
				{Sx: cut.Sx, Sy: r.Sy, Ex: cut.Ex, Ey: cut.Sy},
			}
			for _, p := range pieces {
				if p.IsValid() {
					next = append(next, p)
				}
			}
		}

		work = next
	}

	return work
}

type sweepEventType uint8

const (
	sweepEnter sweepEventType = iota
	sweepExit
)

type sweepEvent struct {
	x         float32
	yStart    float32
	yEnd      float32
	eventType sweepEventType
}

// SubtractRectsSweep is the sweep-line formulation of SubtractRects: enter
// and exit events at each occluder's x bounds, exits processed before enters
// at equal x, active transverse intervals subtracted from the view span
// between consecutive events. It scales better with large occluder counts and
// produces the same region.
func SubtractRectsSweep(view Rect, occluders []Rect) []Rect {
	if !view.IsValid() {
		return nil
	}

	var relevant []Rect
	for _, o := range occluders {
		if cut, ok := view.Intersection(o); ok {
			relevant = append(relevant, cut)
		}
	}
	if len(relevant) == 0 {
		return []Rect{view}
	}

	events := make([]sweepEvent, 0, len(relevant)*2)
	for _, o := range relevant {
		events = append(events,
			sweepEvent{x: o.Sx, yStart: o.Sy, yEnd: o.Ey, eventType: sweepEnter},
			sweepEvent{x: o.Ex, yStart: o.Sy, yEnd: o.Ey, eventType: sweepExit},
		)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].x != events[j].x {
			return events[i].x < events[j].x
		}
		return events[i].eventType == sweepExit && events[j].eventType == sweepEnter
	})

	var result []Rect
	var active []Interval
	prevX := view.Sx

	emit := func(fromX, toX float32) {
		if toX <= fromX {
			return
		}
		for _, iv := range SubtractIntervals(Interval{Start: view.Sy, End: view.Ey}, active) {
			if iv.IsValid() {
				result = append(result, Rect{Sx: fromX, Sy: iv.Start, Ex: toX, Ey: iv.End})
			}
		}
	}

	for _, ev := range events {
		emit(prevX, ev.x)

		switch ev.eventType {
		case sweepEnter:
			active = append(active, Interval{Start: ev.yStart, End: ev.yEnd})
		case sweepExit:
			for i, iv := range active {
				if iv.Start == ev.yStart && iv.End == ev.yEnd {
					active = append(active[:i], active[i+1:]...)
					break
				}
			}
		}

		if ev.x > prevX {
			prevX = ev.x
		}
	}

	emit(prevX, view.Ex)

	return result
}
