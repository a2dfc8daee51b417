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

package netops

import (
	"runtime"

	log "github.com/cihub/seelog"
	"github.com/pkg/errors"
	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
)

// inLockedThread runs fn with the OS thread locked and the host namespace
// handle available, so fn may switch the thread's namespace freely.
func inLockedThread(fn func(origin netns.NsHandle) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	origin, err := netns.Get()
	if err != nil {
		return errors.Wrap(err, "failed to open the host namespace")
	}
	defer origin.Close()

	return fn(origin)
}

// runInNamespace runs fn with the calling thread switched into the named
// namespace. Commands executed by fn inherit the namespace.
func runInNamespace(namespaceID string, fn func() error) error {
	return inLockedThread(func(origin netns.NsHandle) error {
		target, err := netns.GetFromName(namespaceID)
		if err != nil {
			return errors.Wrapf(err, "failed to find namespace %s", namespaceID)
		}
		defer target.Close()

		if err := netns.Set(target); err != nil {
			return errors.Wrapf(err, "failed to enter namespace %s", namespaceID)
		}
		defer func() {
			if err := netns.Set(origin); err != nil {
				log.Errorf("Failed to return to the host namespace: %v.", err)
			}
		}()

		return fn()
	})
}

// handleInNamespace returns a netlink handle scoped to the named namespace.
// The caller must close both the handle and the namespace handle.
func handleInNamespace(namespaceID string) (*netlink.Handle, netns.NsHandle, error) {
	ns, err := netns.GetFromName(namespaceID)
	if err != nil {
		return nil, ns, errors.Wrapf(err, "failed to find namespace %s", namespaceID)
	}

	handle, err := netlink.NewHandleAt(ns)
	if err != nil {
		ns.Close()
		return nil, ns, errors.Wrapf(err, "failed to open netlink handle in namespace %s", namespaceID)
	}

	return handle, ns, nil
}
