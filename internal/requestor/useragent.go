package requestor

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/MarcFord/emburse-go/internal/version"
	"github.com/bytedance/sonic"
)

// UserAgent is sent as the User-Agent header on every request
var UserAgent = fmt.Sprintf("Emburse/%s GoBindings/%s", version.APIVersion, version.Version)

type collector struct {
	field string
	fn    func() (string, error)
}

// collectors gather runtime details for the X-Client-User-Agent header
var collectors = []collector{
	{field: "lang_version", fn: func() (string, error) { return runtime.Version(), nil }},
	{field: "platform", fn: func() (string, error) { return runtime.GOOS + "/" + runtime.GOARCH, nil }},
	{field: "uname", fn: uname},
}

func uname() (string, error) {
	host, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return strings.Join([]string{runtime.GOOS, host, runtime.GOARCH}, " "), nil
}

// clientUserAgent renders the diagnostic JSON blob. A collector that fails
// contributes "!! <error>" for its own field only.
func clientUserAgent(httplib string) string {
	ua := map[string]string{
		"bindings_version": version.Version,
		"lang":             "go",
		"publisher":        version.Publisher,
		"httplib":          httplib,
	}
	for _, c := range collectors {
		ua[c.field] = collect(c.fn)
	}

	data, err := sonic.ConfigStd.Marshal(ua)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(data)
}

func collect(fn func() (string, error)) (val string) {
	defer func() {
		if r := recover(); r != nil {
			val = fmt.Sprintf("!! %v", r)
		}
	}()

	v, err := fn()
	if err != nil {
		return "!! " + err.Error()
	}
	return v
}
