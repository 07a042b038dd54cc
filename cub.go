// Package cub is the public surface of the airspace file codec: open a
// source, inspect its decoded header and item table, and stream each
// item's points lazily. See section, points, wire, and errs for the
// layers this package assembles.
package cub

import (
	"fmt"
	"io"

	"github.com/Turbo87/seeyou-cub/errs"
	"github.com/Turbo87/seeyou-cub/format"
	"github.com/Turbo87/seeyou-cub/points"
	"github.com/Turbo87/seeyou-cub/section"
	"github.com/Turbo87/seeyou-cub/wire"
)

// File is a decoded airspace file: the header and item table are fully
// in memory, while point streams are read lazily and on demand. A single
// busy flag enforces that only one point stream is read at a time; the
// underlying source has one seek cursor.
type File struct {
	src    io.ReadSeeker
	header section.Header
	items  []section.Item

	warnings []errs.Warning
	busy     bool
}

// Open decodes the header and item table from src, which must remain
// valid and seekable for the lifetime of File (and of any Points
// iterator obtained from it). It returns accumulated lenient warnings
// alongside a hard error for any condition that prevents framing the
// rest of the file.
func Open(src io.ReadSeeker) (*File, []errs.Warning, error) {
	f := &File{src: src}

	r := wire.NewReader(src, nil)

	headerWarnings, err := f.header.Parse(r)
	if err != nil {
		return nil, nil, err
	}
	f.warnings = append(f.warnings, headerWarnings...)

	if err := r.SeekTo(int64(f.header.ItemTableOffset)); err != nil {
		return nil, nil, err
	}

	stride := f.header.ItemStride()
	f.items = make([]section.Item, f.header.ItemCount)
	for i := range f.items {
		if err := f.items[i].Parse(r, stride); err != nil {
			return nil, nil, fmt.Errorf("cub: item %d: %w", i, err)
		}
		f.warnings = append(f.warnings, validateItemEnums(i, &f.items[i])...)
	}

	return f, f.warnings, nil
}

// validateItemEnums checks the enumerable fields of one decoded item
// against their domains, returning one InvalidEnumValue warning per
// out-of-domain field found.
func validateItemEnums(index int, it *section.Item) []errs.Warning {
	context := fmt.Sprintf("item %d", index)

	var warnings []errs.Warning

	view := ItemView{item: it}

	if _, ok := view.MinAltitudeReference(); !ok {
		w := errs.InvalidEnumValue("min_alt_ref", int64(it.AltStyleByte&0x0F), int64(format.AltRefUnknown))
		w.Context = context
		warnings = append(warnings, w)
	}
	if _, ok := view.MaxAltitudeReference(); !ok {
		w := errs.InvalidEnumValue("max_alt_ref", int64((it.AltStyleByte>>4)&0x0F), int64(format.AltRefUnknown))
		w.Context = context
		warnings = append(warnings, w)
	}
	if it.ExtendedType != 0 {
		if _, ok := view.ExtendedType(); !ok {
			w := errs.InvalidEnumValue("extended_type_byte", int64(it.ExtendedType), int64(format.ExtendedTypeNone))
			w.Context = context
			warnings = append(warnings, w)
		}
	}

	return warnings
}

// Header returns the decoded file header.
func (f *File) Header() section.Header {
	return f.header
}

// Items returns a view over every decoded item, in file order.
func (f *File) Items() []ItemView {
	views := make([]ItemView, len(f.items))
	for i := range f.items {
		views[i] = ItemView{item: &f.items[i]}
	}

	return views
}

// Warnings returns every lenient warning accumulated since Open, across
// the header, item table, and any point streams read to their end (or
// to an error); a stream still being read contributes nothing yet.
func (f *File) Warnings() []errs.Warning {
	return f.warnings
}

// PointIterator is the interface File.Points hands back: the decode
// surface of points.Iterator, wrapped so the caller's normal drain-to-
// exhaustion loop is enough to release the file's borrow.
type PointIterator interface {
	Next() (points.Point, bool, error)
	Exhausted() bool
	Warnings() []errs.Warning
}

// Points returns a lazy iterator over item's point stream. It borrows
// the file handle exclusively: calling Points again before the returned
// iterator's Next has reported the end of the stream (or an error)
// returns ErrAlreadyStreaming. An iterator dropped before that point
// keeps the handle borrowed.
// context labels any warnings the iterator emits; the item's 0-based
// index is a reasonable default.
func (f *File) Points(item ItemView, context string) (PointIterator, error) {
	if f.busy {
		return nil, errs.ErrAlreadyStreaming
	}

	r := wire.NewReader(f.src, f.header.Engine())
	iter, err := points.NewIterator(r, &f.header, item.item, context)
	if err != nil {
		return nil, err
	}

	f.busy = true

	return &releasingIterator{Iterator: iter, file: f}, nil
}

// releasingIterator clears File.busy the first time its Next reports
// end-of-stream, so a caller who drains the iterator normally never has
// to remember to call a separate Release/Close method.
type releasingIterator struct {
	*points.Iterator
	file     *File
	released bool
}

func (r *releasingIterator) Next() (points.Point, bool, error) {
	pt, ok, err := r.Iterator.Next()
	if (!ok || err != nil) && !r.released {
		r.released = true
		r.file.busy = false
		r.file.warnings = append(r.file.warnings, r.Iterator.Warnings()...)
	}

	return pt, ok, err
}
