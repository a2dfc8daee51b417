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

package vpcaddr

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

const (
	// Name templates for objects created per VPC and per subnet.
	bridgeNameFormat  = "br-%s"
	namespaceIDFormat = "ns-%s-%s"

	// Veth end names carry a short hash because Linux interface names are
	// limited to 15 characters (IFNAMSIZ minus the terminating NUL), while
	// VPC and subnet names are unbounded. Eight hex characters give a 2^32
	// derivation space; with the birthday bound, the collision probability
	// stays below 1e-5 until roughly 300 subnets share a host, far beyond
	// what a single-host emulation reaches. The hash input includes both
	// names, so the mapping is stable across re-invocations.
	subnetVethFormat  = "v%sn" // namespace end
	bridgeVethFormat  = "v%sb" // bridge end
	peeringVethFormat = "p%s%s"

	shortHashLen = 8
)

// BridgeName returns the name of the bridge backing the given VPC.
func BridgeName(vpcName string) string {
	return fmt.Sprintf(bridgeNameFormat, vpcName)
}

// NamespaceID returns the network namespace id backing the given subnet.
func NamespaceID(vpcName, subnetName string) string {
	return fmt.Sprintf(namespaceIDFormat, vpcName, subnetName)
}

// SubnetLinkNames returns the deterministic veth end names for a subnet. The
// first name is the end moved into the subnet's namespace, the second is the
// end attached to the VPC bridge.
func SubnetLinkNames(vpcName, subnetName string) (string, string) {
	id := shortHash(vpcName + "-" + subnetName)
	return fmt.Sprintf(subnetVethFormat, id), fmt.Sprintf(bridgeVethFormat, id)
}

// PeeringLinkNames returns the deterministic veth end names for a peering link
// between two VPCs. The names depend only on the unordered pair: calling with
// the arguments swapped returns the same two names, each still paired with the
// VPC it was returned for.
func PeeringLinkNames(vpc1, vpc2 string) (string, string) {
	lo, hi := vpc1, vpc2
	if lo > hi {
		lo, hi = hi, lo
	}

	id := shortHash(lo + "-" + hi)
	loEnd := fmt.Sprintf(peeringVethFormat, id, "a")
	hiEnd := fmt.Sprintf(peeringVethFormat, id, "b")

	if vpc1 == lo {
		return loEnd, hiEnd
	}
	return hiEnd, loEnd
}

func shortHash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:shortHashLen]
}
