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

// Package core holds the lifecycle managers for VPCs, subnets, peerings and
// firewall rules. Every operation loads the persisted topology, validates its
// preconditions, issues the ordered primitive calls and persists the updated
// topology, all under the record's key lock.
package core

import (
	"github.com/pkg/errors"

	"github.com/vpclab/vpcctl/store"
)

// Sentinels re-exported from the store so that callers depend on one package
// for the error taxonomy. Primitive failures cross the manager boundary as
// wrapped provider errors.
var (
	ErrNotFound      = store.ErrNotFound
	ErrAlreadyExists = store.ErrAlreadyExists
)

// ValidationError reports an operation whose arguments were well-formed but
// whose preconditions did not hold, such as enabling NAT on a VPC without
// public subnets.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Reason: errors.Errorf(format, args...).Error()}
}
