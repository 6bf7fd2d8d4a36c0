// Copyright 2025 CascadePass
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tcx

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

// ActivityExtensionNS is the namespace Garmin assigns to the activity
// extension schema that carries power samples. Files bind it to
// whatever prefix they like (ns3, tpx, or the default namespace), so
// matching goes by namespace URI rather than prefix.
const ActivityExtensionNS = "http://www.garmin.com/xmlschemas/ActivityExtension/v2"

// wattsTag is the local name of a power sample element.
const wattsTag = "Watts"

// InvalidPoint records a Watts element whose text could not be parsed
// as a number. The element is left untouched in the document.
type InvalidPoint struct {
	// Path is the element's absolute path within the document.
	Path string

	// Text is the unparseable content, reported verbatim.
	Text string
}

// ScaleResult summarizes one pass of the scaler over a document.
type ScaleResult struct {
	// Points is the number of Watts elements that were scaled.
	Points int

	// Total is the sum of all scaled values.
	Total int64

	// Invalid lists the Watts elements that were skipped because
	// their content was not numeric.
	Invalid []InvalidPoint
}

// Average returns the mean scaled value, or zero for a document with no
// scaled points.
func (r *ScaleResult) Average() float64 {
	if r.Points == 0 {
		return 0
	}
	return float64(r.Total) / float64(r.Points)
}

// ⚡ Scaler multiplies every power sample in a document by a fixed
// factor. A factor below 1 derates the file, above 1 inflates it, and
// exactly 1 rewrites every sample to its rounded self.
type Scaler struct {
	factor float64
}

// NewScaler creates a Scaler for the given factor. The factor is taken
// as-is; validation belongs to the config layer.
func NewScaler(factor float64) *Scaler {
	return &Scaler{factor: factor}
}

// Factor returns the multiplier the scaler was built with.
func (s *Scaler) Factor() float64 {
	return s.factor
}

// 🔁 Scale walks the document, multiplies each parseable Watts value
// by the factor, and writes the rounded integer back into the element.
// Non-numeric values are reported in the result and left untouched.
// Scale mutates the document in place and is not idempotent: running it
// twice scales twice.
func (s *Scaler) Scale(ctx context.Context, doc *Document) *ScaleResult {
	logger := zerolog.Ctx(ctx)
	result := &ScaleResult{}

	for _, el := range collectWatts(doc.Root()) {
		raw := el.Text()
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			logger.Warn().
				Str("file", doc.Path).
				Str("path", el.GetPath()).
				Str("value", raw).
				Msg("skipping non-numeric power sample")
			result.Invalid = append(result.Invalid, InvalidPoint{
				Path: el.GetPath(),
				Text: raw,
			})
			continue
		}

		// Banker's rounding keeps repeated half-up drift out of
		// long rides full of .5 products.
		product := math.RoundToEven(value * s.factor)

		// ParseFloat accepts NaN, Inf, and values far past int64
		// range; converting those is undefined, so they count as
		// invalid samples too.
		if math.IsNaN(product) || product >= math.MaxInt64 || product <= math.MinInt64 {
			logger.Warn().
				Str("file", doc.Path).
				Str("path", el.GetPath()).
				Str("value", raw).
				Msg("skipping power sample outside representable range")
			result.Invalid = append(result.Invalid, InvalidPoint{
				Path: el.GetPath(),
				Text: raw,
			})
			continue
		}

		scaled := int64(product)
		el.SetText(strconv.FormatInt(scaled, 10))

		result.Points++
		result.Total += scaled

		logger.Debug().
			Str("file", doc.Path).
			Str("path", el.GetPath()).
			Str("before", raw).
			Int64("after", scaled).
			Msg("scaled power sample")
	}

	return result
}

// collectWatts gathers every Watts element under root, in document
// order, matching on local name and namespace URI.
func collectWatts(root *etree.Element) []*etree.Element {
	if root == nil {
		return nil
	}
	var found []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == wattsTag && el.NamespaceURI() == ActivityExtensionNS {
			found = append(found, el)
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return found
}
