// Copyright Amazon.com Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may
// not use this file except in compliance with the License. A copy of the
// License is located at
//
//	http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

package core

import (
	log "github.com/cihub/seelog"
	"github.com/pkg/errors"
)

// step is one primitive call of a multi-step lifecycle operation. Steps that
// create OS-level objects carry a revert so a failed operation does not leave
// orphans behind; a nil revert marks a step with nothing to undo.
type step struct {
	name   string
	apply  func() error
	revert func() error
}

// runSteps applies the steps in order. On the first failure it reverts the
// completed steps in reverse order, then returns the original error wrapped
// with the failing step. Revert failures are logged, not propagated: the
// first error is the one the caller needs.
func runSteps(op string, steps []step) error {
	for i, s := range steps {
		err := s.apply()
		if err == nil {
			continue
		}

		log.Errorf("%s: step %q failed: %v.", op, s.name, err)
		for j := i - 1; j >= 0; j-- {
			if steps[j].revert == nil {
				continue
			}
			log.Infof("%s: reverting step %q.", op, steps[j].name)
			if rerr := steps[j].revert(); rerr != nil {
				log.Warnf("%s: revert of step %q failed: %v.", op, steps[j].name, rerr)
			}
		}

		return errors.Wrapf(err, "%s: %s", op, s.name)
	}

	return nil
}
