// FILE: idevlog/src/internal/filter/quiet.go
package filter

// Daemons whose output drowns interesting lines on a stock device.
// Matched against the whole process name, not as a substring.
// The upstream list has 75 names; kernel is left out here (74), since
// kernel_only / no_kernel own it.
var quietProcesses = map[string]struct{}{
	"CircleJoinRequested":                   {},
	"CommCenter":                            {},
	"HeuristicInterpreter":                  {},
	"MobileMail":                            {},
	"PowerUIAgent":                          {},
	"ProtectedCloudKeySyncing":              {},
	"SpringBoard":                           {},
	"UserEventAgent":                        {},
	"WirelessRadioManagerd":                 {},
	"accessoryd":                            {},
	"accountsd":                             {},
	"aggregated":                            {},
	"analyticsd":                            {},
	"appstored":                             {},
	"apsd":                                  {},
	"assetsd":                               {},
	"assistant_service":                     {},
	"backboardd":                            {},
	"biometrickitd":                         {},
	"bluetoothd":                            {},
	"calaccessd":                            {},
	"callservicesd":                         {},
	"cloudd":                                {},
	"com.apple.Safari.SafeBrowsing.Service": {},
	"contextstored":                         {},
	"corecaptured":                          {},
	"coreduetd":                             {},
	"corespeechd":                           {},
	"cdpd":                                  {},
	"dasd":                                  {},
	"dataaccessd":                           {},
	"distnoted":                             {},
	"dprivacyd":                             {},
	"duetexpertd":                           {},
	"findmydeviced":                         {},
	"fmfd":                                  {},
	"fmflocatord":                           {},
	"gpsd":                                  {},
	"healthd":                               {},
	"homed":                                 {},
	"identityservicesd":                     {},
	"imagent":                               {},
	"itunescloudd":                          {},
	"itunesstored":                          {},
	"locationd":                             {},
	"maild":                                 {},
	"mDNSResponder":                         {},
	"mediaremoted":                          {},
	"mediaserverd":                          {},
	"mobileassetd":                          {},
	"nanoregistryd":                         {},
	"nanotimekitcompaniond":                 {},
	"navd":                                  {},
	"nsurlsessiond":                         {},
	"passd":                                 {},
	"pasted":                                {},
	"photoanalysisd":                        {},
	"powerd":                                {},
	"powerlogHelperd":                       {},
	"ptpd":                                  {},
	"rapportd":                              {},
	"remindd":                               {},
	"routined":                              {},
	"runningboardd":                         {},
	"searchd":                               {},
	"sharingd":                              {},
	"suggestd":                              {},
	"symptomsd":                             {},
	"timed":                                 {},
	"thermalmonitord":                       {},
	"useractivityd":                         {},
	"vmd":                                   {},
	"wifid":                                 {},
	"wirelessproxd":                         {},
}

// IsQuietProcess reports whether name is one of the known noisy daemons
func IsQuietProcess(name string) bool {
	_, ok := quietProcesses[name]
	return ok
}
