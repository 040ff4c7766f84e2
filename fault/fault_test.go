// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/facetmarket/facetd/fault"
)

var (
	errAuthorizationOne = fault.AuthorizationError("authorization one")
	errExistsOne        = fault.ExistsError("exists one")
	errExternalOne      = fault.ExternalError("external one")
	errInvalidOne       = fault.InvalidError("invalid one")
	errNotFoundOne      = fault.NotFoundError("not found one")
	errProcessOne       = fault.ProcessError("process one")
	errStateOne         = fault.StateError("state one")
)

// test that the error classes remain distinguishable
func TestClassification(t *testing.T) {
	errorList := []struct {
		err           error
		authorization bool
		exists        bool
		external      bool
		invalid       bool
		notFound      bool
		process       bool
		state         bool
	}{
		{errAuthorizationOne, true, false, false, false, false, false, false},
		{fault.NotAuthorized, true, false, false, false, false, false, false},
		{errExistsOne, false, true, false, false, false, false, false},
		{fault.DuplicateSelector, false, true, false, false, false, false, false},
		{errExternalOne, false, false, true, false, false, false, false},
		{fault.NFTTransferFailed, false, false, true, false, false, false, false},
		{errInvalidOne, false, false, false, true, false, false, false},
		{fault.ZeroPrice, false, false, false, true, false, false, false},
		{errNotFoundOne, false, false, false, false, true, false, false},
		{fault.UnknownFunction, false, false, false, false, true, false, false},
		{errProcessOne, false, false, false, false, false, true, false},
		{errStateOne, false, false, false, false, false, false, true},
		{fault.RedundantReplace, false, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrAuthorization(err) != e.authorization {
			t.Errorf("%d: expected 'authorization' == %v for err = %v", i, e.authorization, err)
		}
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrExternal(err) != e.external {
			t.Errorf("%d: expected 'external' == %v for err = %v", i, e.external, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrState(err) != e.state {
			t.Errorf("%d: expected 'state' == %v for err = %v", i, e.state, err)
		}
	}
}
