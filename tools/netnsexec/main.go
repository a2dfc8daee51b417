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

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/vishvananda/netns"
)

// netnsexec runs a command inside a named network namespace, addressed by the
// raw namespace id rather than through the VPC records. Useful for poking at
// a subnet namespace when the store and the host disagree.
//
// Usage: netnsexec namespaceID cmd [arg]...
func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: netnsexec namespaceID cmd [arg]...")
		os.Exit(1)
	}
	namespaceID := args[0]
	cmd := args[1]

	// The thread must not change while the namespace is switched.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	origin, err := netns.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get current netns: %v.\n", err)
		os.Exit(1)
	}
	defer origin.Close()

	target, err := netns.GetFromName(namespaceID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to find netns %s: %v.\n", namespaceID, err)
		os.Exit(1)
	}
	defer target.Close()

	if err := netns.Set(target); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to enter netns %s: %v.\n", namespaceID, err)
		os.Exit(1)
	}
	defer netns.Set(origin)

	output, err := exec.Command(cmd, args[2:]...).CombinedOutput()
	os.Stdout.Write(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run command %v: %v.\n", cmd, err)
		os.Exit(1)
	}
}
