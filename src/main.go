package main

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"time"
)

var Version = "development"
var BuildTime = ""

func init() {
	runtime.LockOSThread()
}

// Checks if error is not null, if there is an error it displays a error dialogue box and crashes the program.
func chk(err error) {
	if err != nil {
		ShowErrorDialog(err.Error())
		panic(err)
	}
}

// Extended version of 'chk()'
func chkEX(err error, txt string, crash bool) bool {
	if err != nil {
		ShowErrorDialog(txt + err.Error())
		if crash {
			panic(Error(txt + err.Error()))
		}
		return true
	}
	return false
}

func main() {
	chdirToAppBundleRoot()

	// Make save directories, if they don't exist
	os.Mkdir("save", os.ModeSticky|0755)
	os.Mkdir("save/logs", os.ModeSticky|0755)

	sys.cmdFlags = processCommandLine(os.Args[1:])

	if _, ok := sys.cmdFlags["-config"]; !ok {
		sys.cmdFlags["-config"] = "save/config.ini"
	}
	cfg, err := loadConfig(sys.cmdFlags["-config"])
	chk(err)
	sys.cfg = *cfg
	sys.cfg.sysSet()
	chkEX(sys.cfg.Save(sys.cfg.Def), "Could not save config: ", false)

	defer sys.shutdown()
	if err := sys.init(); err != nil {
		if sys.log != nil {
			sys.log.Errorf("%v", err)
		}
		chkEX(err, "Could not start the GUI:\n", true)
	}

	if sys.headless {
		sys.runHeadless(time.Second / 60)
		return
	}
	chkEX(sys.runWindowed(), "Window error:\n", true)
}

const helpText = `Options (case sensitive):
-h -?                   Help
-config <path>          Loads engine configuration from <path> (default save/config.ini)
-gui <path>             Loads the GUI configuration <path>
-script <path>          Runs the main script <path>
-lang <id>              Starts in language <id>, or "system"
-windowed               Starts in windowed mode (disables fullscreen)
-width <num>            Sets window width
-height <num>           Sets window height
-setvolume <num>        Sets master volume to <num> (0-100)

Debug Options:
-nosound                Disables all sound effects and music
-headless               Runs without a window
-frames <num>           Quits after <num> frames`

var boolFlags = map[string]bool{
	"-windowed": true,
	"-nosound":  true,
	"-headless": true,
}

// processCommandLine turns the arguments into a flag map. Boolean flags map
// to "true"; any other flag takes the next argument as its value.
func processCommandLine(args []string) map[string]string {
	flags := make(map[string]string)
	key := ""
	help := regexp.MustCompile("^-[h%?]$")
	flag := regexp.MustCompile("^-")
	for _, a := range args {
		_, err := strconv.ParseFloat(a, 64)
		isNumber := err == nil
		if key != "" && (isNumber || !flag.MatchString(a)) {
			flags[key] = a
			key = ""
			continue
		}
		if !flag.MatchString(a) {
			continue
		}
		key = ""
		if help.MatchString(a) {
			fmt.Printf("Computer Wars %s command line options\n\n%s\n", Version, helpText)
			os.Exit(0)
		}
		if boolFlags[a] {
			flags[a] = "true"
		} else {
			flags[a] = ""
			key = a
		}
	}
	if key != "" {
		flags[key] = "true"
	}
	return flags
}
