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

package store

import "time"

// Subnet kinds.
const (
	SubnetPublic  = "public"
	SubnetPrivate = "private"
)

// Subnet is a subnet record embedded in its owning VPC record. It has no
// independent lifecycle.
type Subnet struct {
	Name      string `json:"name"`
	CIDR      string `json:"cidr"`
	Type      string `json:"type"`
	Namespace string `json:"namespace"`
	VethNS    string `json:"veth_ns"`
	VethBR    string `json:"veth_br"`
	Gateway   string `json:"gateway"`
	IP        string `json:"ip"`
}

// VPC is the persisted record of a VPC. Subnets keep their creation order.
// NATPublicBlocks is the snapshot of public subnet blocks taken at NAT-enable
// time; cleanup at VPC deletion uses the snapshot, not the live subnet list,
// so teardown stays symmetric even if subnets changed afterward.
type VPC struct {
	Name            string    `json:"name"`
	CIDR            string    `json:"cidr"`
	Bridge          string    `json:"bridge"`
	Subnets         []Subnet  `json:"subnets"`
	NATEnabled      bool      `json:"nat_enabled"`
	InternetIface   string    `json:"internet_interface,omitempty"`
	NATPublicBlocks []string  `json:"nat_public_blocks,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Peering is the persisted record of a peering between two VPCs. It is stored
// independently of the VPC records and holds no back-references.
type Peering struct {
	VPC1  string `json:"vpc1"`
	VPC2  string `json:"vpc2"`
	Veth1 string `json:"veth1"`
	Veth2 string `json:"veth2"`
}

// FindSubnet returns the subnet with the given name, or nil.
func (v *VPC) FindSubnet(name string) *Subnet {
	for i := range v.Subnets {
		if v.Subnets[i].Name == name {
			return &v.Subnets[i]
		}
	}
	return nil
}

// FindSubnetByCIDR returns the subnet with the given address block, or nil.
func (v *VPC) FindSubnetByCIDR(cidrBlock string) *Subnet {
	for i := range v.Subnets {
		if v.Subnets[i].CIDR == cidrBlock {
			return &v.Subnets[i]
		}
	}
	return nil
}

// PublicBlocks returns the address blocks of the VPC's public subnets, in
// creation order.
func (v *VPC) PublicBlocks() []string {
	var blocks []string
	for _, subnet := range v.Subnets {
		if subnet.Type == SubnetPublic {
			blocks = append(blocks, subnet.CIDR)
		}
	}
	return blocks
}

// ID returns the canonical storage id for the peering.
func (p *Peering) ID() string {
	return p.VPC1 + "-" + p.VPC2
}
