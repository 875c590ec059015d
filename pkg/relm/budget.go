// Copyright 2026 Sovereign-Mohawk Core Team
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

package relm

import (
	"sync/atomic"

	"github.com/sovereign-dp/relm/internal/telemetry"
)

// budgetGuard is the single-use enforcement decorator shared by every
// mechanism in this package (spec component 6). Hold it in a mechanism
// struct's guard field and call consume at the top of Release, before any validation:
// a failed release must still poison the mechanism, so adversarial
// probing of validation errors can never buy a free extra sample.
type budgetGuard struct {
	exhausted atomic.Bool
	kind      string
}

func newBudgetGuard(kind string) budgetGuard {
	return budgetGuard{kind: kind}
}

// consume marks the guard exhausted and reports whether this call was
// the first. A non-first call returns ErrExhausted, the package's
// exhaustion RuntimeError.
func (g *budgetGuard) consume() error {
	if g.exhausted.Swap(true) {
		telemetry.RecordRejected(g.kind)
		return ErrExhausted
	}
	telemetry.RecordRelease(g.kind)
	return nil
}

// Exhausted reports whether the mechanism has already released.
func (g *budgetGuard) Exhausted() bool {
	return g.exhausted.Load()
}
