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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRunStepsAllSucceed(t *testing.T) {
	var applied []string

	err := runSteps("test op", []step{
		{name: "one", apply: func() error { applied = append(applied, "one"); return nil }},
		{name: "two", apply: func() error { applied = append(applied, "two"); return nil }},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, applied)
}

func TestRunStepsRevertsInReverseOrder(t *testing.T) {
	var events []string

	err := runSteps("test op", []step{
		{
			name:   "one",
			apply:  func() error { events = append(events, "apply one"); return nil },
			revert: func() error { events = append(events, "revert one"); return nil },
		},
		{
			name:   "two",
			apply:  func() error { events = append(events, "apply two"); return nil },
			revert: func() error { events = append(events, "revert two"); return nil },
		},
		{
			name:  "three",
			apply: func() error { return errors.New("boom") },
		},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "three")
	assert.Equal(t, []string{"apply one", "apply two", "revert two", "revert one"}, events)
}

// Steps without a revert are skipped during unwind, and a failing revert
// does not stop the remaining reverts.
func TestRunStepsToleratesRevertGapsAndFailures(t *testing.T) {
	var events []string

	err := runSteps("test op", []step{
		{
			name:   "one",
			apply:  func() error { return nil },
			revert: func() error { events = append(events, "revert one"); return nil },
		},
		{
			name:  "no revert",
			apply: func() error { return nil },
		},
		{
			name:   "failing revert",
			apply:  func() error { return nil },
			revert: func() error { return errors.New("revert boom") },
		},
		{
			name:  "last",
			apply: func() error { return errors.New("boom") },
		},
	})

	assert.Error(t, err)
	assert.Equal(t, []string{"revert one"}, events)
}
