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
	"fmt"
	"net"
	"time"

	log "github.com/cihub/seelog"
	"github.com/pkg/errors"

	"github.com/vpclab/vpcctl/network/netops"
	"github.com/vpclab/vpcctl/network/vpcaddr"
	"github.com/vpclab/vpcctl/store"
)

// VPCManager manages the VPC lifecycle: creation with isolation against every
// other VPC, NAT gateway state and deletion with full resource teardown.
type VPCManager struct {
	store *store.Store
	net   netops.Provider
}

// NewVPCManager creates a new VPCManager.
func NewVPCManager(s *store.Store, p netops.Provider) *VPCManager {
	return &VPCManager{store: s, net: p}
}

// Create creates a VPC with the given address block. The new VPC's bridge is
// isolated from every other currently-known VPC's bridge, so VPCs do not
// forward traffic to each other unless explicitly peered. The isolation rule
// set is derived freshly from the current VPC list on every call, never
// stored.
func (m *VPCManager) Create(name, cidrBlock string) error {
	log.Infof("Creating VPC %s with CIDR %s.", name, cidrBlock)

	if _, _, err := net.ParseCIDR(cidrBlock); err != nil {
		return validationErrorf("invalid CIDR block %q", cidrBlock)
	}

	return m.store.WithVPCLock(name, func() error {
		if _, err := m.store.GetVPC(name); err == nil {
			log.Warnf("VPC %s already exists.", name)
			return errors.Wrapf(ErrAlreadyExists, "vpc %s", name)
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		others, err := m.store.ListVPCs()
		if err != nil {
			return err
		}

		bridge := vpcaddr.BridgeName(name)
		vpc := &store.VPC{
			Name:      name,
			CIDR:      cidrBlock,
			Bridge:    bridge,
			Subnets:   []store.Subnet{},
			CreatedAt: time.Now().UTC(),
		}

		steps := []step{{
			name:   "create bridge " + bridge,
			apply:  func() error { return m.net.CreateBridge(bridge) },
			revert: func() error { return m.net.DeleteBridge(bridge) },
		}}

		for _, other := range others {
			otherBridge := other.Bridge
			steps = append(steps, step{
				name:   "isolate from " + otherBridge,
				apply:  func() error { return m.net.InstallIsolation(bridge, otherBridge) },
				revert: func() error { return m.net.RemoveIsolation(bridge, otherBridge) },
			})
		}

		steps = append(steps, step{
			name:  "persist record",
			apply: func() error { return m.store.SaveVPC(vpc) },
		})

		if err := runSteps(fmt.Sprintf("create vpc %s", name), steps); err != nil {
			return err
		}

		log.Infof("VPC %s created.", name)
		return nil
	})
}

// Delete deletes a VPC and tears down the resources it created: isolation
// rules against the current VPC set, NAT rules from the snapshot taken at
// enable time, every subnet's namespace, and the bridge. Teardown is
// tolerant: a failing step is logged and the remaining steps still run.
//
// Peerings referencing this VPC are left in place; the peering store holds no
// back-references and nothing cascades here.
func (m *VPCManager) Delete(name string) error {
	log.Infof("Deleting VPC %s.", name)

	return m.store.WithVPCLock(name, func() error {
		vpc, err := m.store.GetVPC(name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				log.Warnf("VPC %s does not exist.", name)
			}
			return err
		}

		others, err := m.store.ListVPCs()
		if err != nil {
			return err
		}
		for _, other := range others {
			if other.Name == name {
				continue
			}
			if err := m.net.RemoveIsolation(vpc.Bridge, other.Bridge); err != nil {
				log.Warnf("Failed to remove isolation between %s and %s: %v.",
					vpc.Bridge, other.Bridge, err)
			}
		}

		if vpc.NATEnabled {
			// The snapshot taken at enable time, not the live subnet list.
			if err := m.net.CleanupNAT(vpc.Bridge, vpc.InternetIface, vpc.NATPublicBlocks); err != nil {
				log.Warnf("Failed to clean up NAT for VPC %s: %v.", name, err)
			}
		}

		for _, subnet := range vpc.Subnets {
			if err := m.net.DeleteNamespace(subnet.Namespace); err != nil {
				log.Warnf("Failed to delete namespace %s: %v.", subnet.Namespace, err)
			}
		}

		if err := m.net.DeleteBridge(vpc.Bridge); err != nil {
			log.Warnf("Failed to delete bridge %s: %v.", vpc.Bridge, err)
		}

		if err := m.store.DeleteVPC(name); err != nil {
			return err
		}

		log.Infof("VPC %s deleted.", name)
		return nil
	})
}

// EnableNAT enables outbound internet access for the VPC's public subnets
// through the given internet interface. NAT rules are scoped to exactly the
// blocks of the subnets that are public right now; private subnets never gain
// outbound access through this path. The public block set is frozen into the
// record so that deletion can tear the same rules down even if subnets change
// in between.
func (m *VPCManager) EnableNAT(name, internetInterface string) error {
	log.Infof("Enabling NAT for VPC %s via %s.", name, internetInterface)

	return m.store.WithVPCLock(name, func() error {
		vpc, err := m.store.GetVPC(name)
		if err != nil {
			return err
		}

		if vpc.NATEnabled {
			return validationErrorf("NAT is already enabled for VPC %s", name)
		}

		publicBlocks := vpc.PublicBlocks()
		if len(publicBlocks) == 0 {
			log.Warnf("VPC %s has no public subnets.", name)
			return validationErrorf("VPC %s has no public subnets", name)
		}

		vpc.NATEnabled = true
		vpc.InternetIface = internetInterface
		vpc.NATPublicBlocks = publicBlocks

		steps := []step{
			{
				// Process-wide and idempotent, nothing to undo.
				name:  "enable forwarding",
				apply: func() error { return m.net.EnableForwarding() },
			},
			{
				name:  "install NAT rules",
				apply: func() error { return m.net.SetupNAT(vpc.Bridge, internetInterface, publicBlocks) },
				revert: func() error {
					return m.net.CleanupNAT(vpc.Bridge, internetInterface, publicBlocks)
				},
			},
			{
				name:  "persist record",
				apply: func() error { return m.store.SaveVPC(vpc) },
			},
		}

		if err := runSteps(fmt.Sprintf("enable NAT for vpc %s", name), steps); err != nil {
			return err
		}

		log.Infof("NAT enabled for VPC %s.", name)
		return nil
	})
}

// List returns all VPC records.
func (m *VPCManager) List() ([]*store.VPC, error) {
	return m.store.ListVPCs()
}

// Get returns one VPC record.
func (m *VPCManager) Get(name string) (*store.VPC, error) {
	return m.store.GetVPC(name)
}
