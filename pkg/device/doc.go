// Package device classifies HTTP clients into one of three device categories:
// desktop, mobile and tablet.
//
// Classification combines two signals. The User-Agent string is matched
// against a fixed set of tablet markers (vendor codenames, "tablet",
// "android 3.0" and friends); a match always wins. When no tablet marker is
// present the client is a mobile device iff an upstream detector populated
// the device header (see package mobiledetect), otherwise it is a desktop.
//
//	cat := device.Classify(r.UserAgent(), r.Header.Get(device.Header))
//	switch cat {
//	case device.Tablet:
//	    // serve tablet views
//	case device.Mobile:
//	    // serve mobile views
//	}
//
// IsDevice provides finer-grained checks that are independent of the category
// decision:
//
//	if device.IsDevice(r.UserAgent(), "iphone") {
//	    // iPhone specific tweaks
//	}
//
// All functions are pure and never fail; absent or empty inputs resolve to
// Desktop.
package device
