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

// Package vpcaddr derives subnet addressing and the names of network objects
// owned by a VPC. All derivations are pure functions of their inputs so that
// repeated invocations against the same topology produce the same names.
package vpcaddr

import (
	"fmt"
	"net"

	"github.com/apparentlymart/go-cidr/cidr"
	"github.com/pkg/errors"
)

// Plan holds the addresses derived from a subnet's address block. The gateway
// address is always the first usable host address of the block and is assigned
// to the VPC bridge. The host address is always the second usable host address
// and is assigned to the veth end inside the subnet's namespace.
type Plan struct {
	Prefix  *net.IPNet
	Gateway net.IP
	Host    net.IP
}

// NewPlan derives the addressing plan for the given address block.
func NewPlan(block string) (*Plan, error) {
	_, prefix, err := net.ParseCIDR(block)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid address block %q", block)
	}

	ones, bits := prefix.Mask.Size()
	if bits-ones < 2 {
		return nil, errors.Errorf(
			"address block %q is too small to hold a gateway and a host address", block)
	}

	gateway, err := cidr.Host(prefix, 1)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot derive gateway address for %q", block)
	}

	host, err := cidr.Host(prefix, 2)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot derive host address for %q", block)
	}

	plan := &Plan{
		Prefix:  prefix,
		Gateway: gateway,
		Host:    host,
	}

	return plan, nil
}

// GatewayCIDR returns the gateway address with the block's prefix length,
// suitable for interface assignment.
func (p *Plan) GatewayCIDR() string {
	ones, _ := p.Prefix.Mask.Size()
	return fmt.Sprintf("%s/%d", p.Gateway, ones)
}

// HostCIDR returns the host address with the block's prefix length.
func (p *Plan) HostCIDR() string {
	ones, _ := p.Prefix.Mask.Size()
	return fmt.Sprintf("%s/%d", p.Host, ones)
}
