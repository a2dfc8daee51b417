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

	log "github.com/cihub/seelog"
	"github.com/pkg/errors"

	"github.com/vpclab/vpcctl/network/netops"
	"github.com/vpclab/vpcctl/network/vpcaddr"
	"github.com/vpclab/vpcctl/store"
)

// SubnetManager creates subnets inside existing VPCs. A subnet is a network
// namespace joined to the VPC bridge by a veth pair, with the block's first
// usable address on the bridge as the gateway and the second on the
// namespace end.
//
// Sibling subnet blocks are not checked for overlap. Overlapping blocks
// produce ambiguous routes on the shared bridge; callers own block planning.
type SubnetManager struct {
	store *store.Store
	net   netops.Provider
}

// NewSubnetManager creates a new SubnetManager.
func NewSubnetManager(s *store.Store, p netops.Provider) *SubnetManager {
	return &SubnetManager{store: s, net: p}
}

// Create creates a subnet in the given VPC. The namespace id and veth end
// names are derived deterministically from the VPC and subnet names, so a
// retried invocation addresses the same OS objects.
func (m *SubnetManager) Create(vpcName, subnetName, cidrBlock, subnetType string) error {
	log.Infof("Creating subnet %s (%s, %s) in VPC %s.", subnetName, cidrBlock, subnetType, vpcName)

	if subnetType != store.SubnetPublic && subnetType != store.SubnetPrivate {
		return validationErrorf("invalid subnet type %q", subnetType)
	}

	plan, err := vpcaddr.NewPlan(cidrBlock)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}

	return m.store.WithVPCLock(vpcName, func() error {
		vpc, err := m.store.GetVPC(vpcName)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				log.Errorf("VPC %s does not exist.", vpcName)
			}
			return err
		}

		if vpc.FindSubnet(subnetName) != nil {
			log.Warnf("Subnet %s already exists in VPC %s.", subnetName, vpcName)
			return errors.Wrapf(ErrAlreadyExists, "subnet %s in vpc %s", subnetName, vpcName)
		}

		namespace := vpcaddr.NamespaceID(vpcName, subnetName)
		vethNS, vethBR := vpcaddr.SubnetLinkNames(vpcName, subnetName)

		subnet := store.Subnet{
			Name:      subnetName,
			CIDR:      cidrBlock,
			Type:      subnetType,
			Namespace: namespace,
			VethNS:    vethNS,
			VethBR:    vethBR,
			Gateway:   plan.Gateway.String(),
			IP:        plan.Host.String(),
		}

		steps := []step{
			{
				name:   "create namespace " + namespace,
				apply:  func() error { return m.net.CreateNamespace(namespace) },
				revert: func() error { return m.net.DeleteNamespace(namespace) },
			},
			{
				name:   "create veth pair " + vethNS + "/" + vethBR,
				apply:  func() error { return m.net.CreateLinkPair(vethNS, vethBR) },
				revert: func() error { return m.net.DeleteLinkPair(vethBR) },
			},
			{
				name:  "attach " + vethBR + " to bridge",
				apply: func() error { return m.net.AttachToBridge(vpc.Bridge, vethBR) },
			},
			{
				// From here the namespace end lives inside the namespace
				// and is reclaimed by the namespace revert.
				name:  "move " + vethNS + " into namespace",
				apply: func() error { return m.net.MoveToNamespace(vethNS, namespace) },
			},
			{
				name:  "assign host address",
				apply: func() error { return m.net.AssignAddress(namespace, vethNS, plan.HostCIDR()) },
			},
			{
				name:   "assign gateway address to bridge",
				apply:  func() error { return m.net.AssignBridgeAddress(vpc.Bridge, plan.GatewayCIDR()) },
				revert: func() error { return m.net.RemoveBridgeAddress(vpc.Bridge, plan.GatewayCIDR()) },
			},
			{
				name:  "install default route",
				apply: func() error { return m.net.AddDefaultRoute(namespace, plan.Gateway.String()) },
			},
			{
				name:  "bring loopback up",
				apply: func() error { return m.net.SetLoopbackUp(namespace) },
			},
			{
				name: "persist record",
				apply: func() error {
					vpc.Subnets = append(vpc.Subnets, subnet)
					return m.store.SaveVPC(vpc)
				},
			},
		}

		op := fmt.Sprintf("create subnet %s in vpc %s", subnetName, vpcName)
		if err := runSteps(op, steps); err != nil {
			return err
		}

		log.Infof("Subnet %s created in VPC %s.", subnetName, vpcName)
		return nil
	})
}
