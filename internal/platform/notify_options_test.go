package platform

import (
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if got := o.appName(); got != DefaultAppName {
		t.Errorf("appName() = %q", got)
	}
	if got := o.timeout(); got != 5*time.Second {
		t.Errorf("timeout() = %v", got)
	}
	o = Options{AppName: "Other", Timeout: time.Second}
	if o.appName() != "Other" || o.timeout() != time.Second {
		t.Errorf("overrides ignored: %+v", o)
	}
}
