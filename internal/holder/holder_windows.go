// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

//go:build windows

package holder

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/UntaDotMy/AugmentCode-Free/internal/debug"
)

// The Restart Manager is the only inexpensive Windows API that answers
// "which processes hold this file". A session is registered with the file as
// its sole resource and RmGetList reports the affected applications.
var (
	rstrtmgr                = windows.NewLazySystemDLL("rstrtmgr.dll")
	procRmStartSession      = rstrtmgr.NewProc("RmStartSession")
	procRmRegisterResources = rstrtmgr.NewProc("RmRegisterResources")
	procRmGetList           = rstrtmgr.NewProc("RmGetList")
	procRmEndSession        = rstrtmgr.NewProc("RmEndSession")
)

const (
	rmSessionKeyLen = 32  // CCH_RM_SESSION_KEY
	rmMaxAppName    = 255 // CCH_RM_MAX_APP_NAME
	rmMaxSvcName    = 63  // CCH_RM_MAX_SVC_NAME

	errorMoreData = 234 // ERROR_MORE_DATA
)

type rmUniqueProcess struct {
	ProcessID        uint32
	ProcessStartTime windows.Filetime
}

type rmProcessInfo struct {
	Process          rmUniqueProcess
	AppName          [rmMaxAppName + 1]uint16
	ServiceShortName [rmMaxSvcName + 1]uint16
	ApplicationType  uint32
	AppStatus        uint32
	TSSessionID      uint32
	Restartable      int32
}

// FindHolders returns the processes that have path open, discovered via the
// Restart Manager. Any failure along the way yields an empty result rather
// than an error; callers must treat empty as "unknown".
func FindHolders(path string) []Process {
	var session uint32
	key := make([]uint16, rmSessionKeyLen+1)
	ret, _, _ := procRmStartSession.Call(
		uintptr(unsafe.Pointer(&session)),
		0,
		uintptr(unsafe.Pointer(&key[0])),
	)
	if ret != 0 {
		debug.Log("findholders: RmStartSession failed: %d", ret)
		return nil
	}
	defer procRmEndSession.Call(uintptr(session)) //nolint:errcheck

	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil
	}
	resources := []*uint16{p}
	ret, _, _ = procRmRegisterResources.Call(
		uintptr(session),
		1,
		uintptr(unsafe.Pointer(&resources[0])),
		0, 0, 0, 0,
	)
	if ret != 0 {
		debug.Log("findholders: RmRegisterResources failed: %d", ret)
		return nil
	}

	// First call sizes the buffer; it reports ERROR_MORE_DATA when any
	// holders exist.
	var needed, count, rebootReasons uint32
	ret, _, _ = procRmGetList.Call(
		uintptr(session),
		uintptr(unsafe.Pointer(&needed)),
		uintptr(unsafe.Pointer(&count)),
		0,
		uintptr(unsafe.Pointer(&rebootReasons)),
	)
	if ret != errorMoreData || needed == 0 {
		return nil
	}

	infos := make([]rmProcessInfo, needed)
	count = needed
	ret, _, _ = procRmGetList.Call(
		uintptr(session),
		uintptr(unsafe.Pointer(&needed)),
		uintptr(unsafe.Pointer(&count)),
		uintptr(unsafe.Pointer(&infos[0])),
		uintptr(unsafe.Pointer(&rebootReasons)),
	)
	if ret != 0 {
		debug.Log("findholders: RmGetList failed: %d", ret)
		return nil
	}

	holders := make([]Process, 0, count)
	for i := range infos[:count] {
		holders = append(holders, Process{
			PID:        int(infos[i].Process.ProcessID),
			Executable: windows.UTF16ToString(infos[i].AppName[:]),
		})
	}
	return holders
}
