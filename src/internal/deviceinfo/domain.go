// FILE: idevlog/src/internal/deviceinfo/domain.go
package deviceinfo

import (
	"fmt"
	"strings"
)

// Domain is a lockdown property domain. All is the unnamed root domain.
type Domain string

const (
	All               Domain = ""
	Battery           Domain = "com.apple.mobile.battery"
	DiskUsage         Domain = "com.apple.disk_usage"
	DiskUsageFactory  Domain = "com.apple.disk_usage.factory"
	Developer         Domain = "com.apple.xcode.developerdomain"
	International     Domain = "com.apple.international"
	WirelessLockdown  Domain = "com.apple.mobile.wireless_lockdown"
	SoftwareBehavior  Domain = "com.apple.mobile.software_behavior"
	InternalMobile    Domain = "com.apple.mobile.internal"
	Restriction       Domain = "com.apple.mobile.restriction"
	SyncDataClass     Domain = "com.apple.mobile.sync_data_class"
	DataSync          Domain = "com.apple.mobile.data_sync"
	ITunesStore       Domain = "com.apple.mobile.iTunes.store"
	FMiP              Domain = "com.apple.fmip"
	LockdownCache     Domain = "com.apple.mobile.lockdown_cache"
	NikitaSettings    Domain = "com.apple.mobile.nikita"
	MobileApplication Domain = "com.apple.mobile.mobile_application_usage"
)

// Well known keys of the root domain
const (
	KeyProductType     = "ProductType"
	KeyProductVersion  = "ProductVersion"
	KeyBuildVersion    = "BuildVersion"
	KeyDeviceName      = "DeviceName"
	KeyDeviceClass     = "DeviceClass"
	KeyHardwareModel   = "HardwareModel"
	KeySerialNumber    = "SerialNumber"
	KeyUniqueDeviceID  = "UniqueDeviceID"
	KeyCPUArchitecture = "CPUArchitecture"
)

var domainNames = map[string]Domain{
	"all":                All,
	"battery":            Battery,
	"disk_usage":         DiskUsage,
	"disk_usage_factory": DiskUsageFactory,
	"developer":          Developer,
	"international":      International,
	"wireless_lockdown":  WirelessLockdown,
	"software_behavior":  SoftwareBehavior,
	"internal":           InternalMobile,
	"restriction":        Restriction,
	"sync_data_class":    SyncDataClass,
	"data_sync":          DataSync,
	"itunes_store":       ITunesStore,
	"fmip":               FMiP,
	"lockdown_cache":     LockdownCache,
	"nikita":             NikitaSettings,
	"application_usage":  MobileApplication,
}

// ParseDomain accepts a short name ("battery") or a full domain string
func ParseDomain(name string) (Domain, error) {
	if d, ok := domainNames[strings.ToLower(name)]; ok {
		return d, nil
	}
	for _, d := range domainNames {
		if string(d) == name {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown device domain: %s", name)
}

func (d Domain) String() string {
	if d == All {
		return "all"
	}
	return string(d)
}
