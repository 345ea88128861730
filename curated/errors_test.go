// This file is part of Tapedeck.
//
// Tapedeck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tapedeck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tapedeck.  If not, see <https://www.gnu.org/licenses/>.

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/test"
)

const testError = "test error: %s"
const wrapError = "wrap: %v"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	// wrapping errors of the same pattern removes the duplicate part
	f := curated.Errorf(testError, e)
	test.ExpectEquality(t, f.Error(), "test error: foo")
}

func TestIsAndHas(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	f := curated.Errorf(wrapError, e)

	test.ExpectEquality(t, curated.Is(e, testError), true)
	test.ExpectEquality(t, curated.Is(f, testError), false)
	test.ExpectEquality(t, curated.Has(f, testError), true)
	test.ExpectEquality(t, curated.IsAny(f), true)
	test.ExpectEquality(t, curated.IsAny(errors.New("plain")), false)
	test.ExpectEquality(t, curated.Has(nil, testError), false)
}

func TestUnwrap(t *testing.T) {
	plain := errors.New("plain")
	f := curated.Errorf(wrapError, plain)
	test.ExpectEquality(t, errors.Is(f, plain), true)
}
