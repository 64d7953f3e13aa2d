package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/asdine/storm/v3"
	"github.com/caarlos0/env/v6"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/menuka400/vision-guided-smart-car-system/car"
	"github.com/menuka400/vision-guided-smart-car-system/car/pwm"
	"github.com/menuka400/vision-guided-smart-car-system/comms"
)

type EnvConfig struct {
	JWT_ISSUER string `env:"CAR_DEVICE_ID" envDefault:"DEV"`
	PRODUCTION bool   `env:"PRODUCTION" envDefault:"0"`
	DEBUG      bool   `env:"DEBUG" envDefault:"0"`
	SRCDIR     string `env:"SRCDIR" envDefault:"."`
	HTMLDIR    string `env:"HTMLDIR" envDefault:"./frontend/"`
	DB         *storm.DB
	Conductor  *comms.Conductor
	Simulated  bool
}

var (
	ENV *EnvConfig
)

func init() {
	// Load main config
	ENV = new(EnvConfig)
	env.Parse(ENV)

	// get db path, this depends on whether we are running on the vehicle
	var dbFile string
	if ENV.PRODUCTION {
		dbFile = "/data/live.db"
	} else {
		dbFile, _ = filepath.Abs("./tmp/dev.db")
		dir := filepath.Dir(dbFile)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			os.Mkdir(dir, 0755)
		}
	}

	db, err := openDb(dbFile)
	if err != nil {
		panic(err)
	}
	ENV.DB = db
}

func main() {
	// process flags
	simulated := flag.Bool("sim", false, "Drive a mock PWM chip instead of real hardware")
	port := flag.String("port", "0.0.0.0:80", "Specify the ip:port to listen on")
	configFile := flag.String("config", "", "Path to the car config yaml")
	pwmChip := flag.Int("pwmchip", 0, "sysfs pwmchip index to drive")
	flag.Parse()

	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Recoverer) // make sure this is last

	defer ENV.DB.Close() // close database when finished

	// Locate and load the device config
	filename := *configFile
	if filename == "" {
		if ENV.PRODUCTION {
			filename = "/data/car_config.yaml"
		} else {
			var err error
			filename, err = filepath.Abs(ENV.SRCDIR + "/car_config.yaml")
			if err != nil {
				panic(err)
			}
		}
	}

	config, err := car.LoadConfig(filename)
	if err != nil {
		panic(fmt.Sprintf("Unable to load car config: %v", err))
	}

	ENV.Simulated = *simulated
	var chip pwm.Chip
	if ENV.Simulated {
		println("Creating simulated PWM chip")
		chip = pwm.NewMockChip()
	} else {
		chip = pwm.NewSysfsChip(*pwmChip)
	}

	smartcar, err := car.NewCar(config, chip)
	if err != nil {
		panic(fmt.Sprintf("Unable to initialize car: %v", err))
	}

	if config.Diagnostics.Enabled {
		smartcar.RunDiagnostics(config.Diagnostics.Step())
	}

	ENV.Conductor = comms.NewConductor(smartcar)
	go ENV.Conductor.UpdateClients()

	if config.MQTT.Broker != "" {
		if _, err := comms.NewMQTTBridge(ENV.Conductor, config.MQTT.Broker, config.MQTT.Port); err != nil {
			log.Printf("MQTT bridge unavailable: %v", err)
		}
	}

	//---
	// Create a local shell
	//---
	{
		commandNames := func([]string) []string {
			return car.CommandNamesList()
		}

		shell := ishell.New()
		shell.Println("Smart car development shell")
		shell.ShowPrompt(true)
		shell.AddCmd(&ishell.Cmd{
			Name: "createsuperuser",
			Help: "createsuperuser <email> <password>",
			Func: func(c *ishell.Context) {
				// disable the '>>>' for cleaner same line input.
				c.ShowPrompt(false)
				defer c.ShowPrompt(true) // yes, revert when done.

				// get email
				var email string
				if len(c.Args) >= 1 {
					email = c.Args[0]
				} else {
					c.Print("Email: ")
					email = c.ReadLine()
				}

				// get password
				var password string
				if len(c.Args) >= 2 {
					password = c.Args[1]
				} else {
					c.Print("Password: ")
					password = c.ReadPassword()
				}

				// create user
				user := &User{
					Email: email,
					Name:  email,
					Admin: true,
				}
				user.SetPassword([]byte(password))
				if err := ENV.DB.Save(user); err != nil {
					panic(err)
				}

				c.Println("Superuser created")
			},
		})

		// Add device specific commands
		shell.AddCmd(&ishell.Cmd{
			Name:      "drive",
			Completer: commandNames,
			Help:      "drive <code|NAME>",
			Func: func(c *ishell.Context) {
				if len(c.Args) < 1 {
					c.Err(fmt.Errorf("usage: drive <code|NAME>"))
					return
				}

				arg := c.Args[0]
				code, err := strconv.Atoi(arg)
				if err != nil {
					var ok bool
					code, ok = car.CodeFor(strings.ToUpper(arg))
					if !ok {
						c.Err(fmt.Errorf("unknown command %q", arg))
						return
					}
				}

				c.Printf("Dispatching %d (%s)\n", code, car.CommandName(code))
				smartcar.Dispatch(code)
			},
		})

		shell.AddCmd(&ishell.Cmd{
			Name: "stop",
			Help: "stop all motors",
			Func: func(c *ishell.Context) {
				c.Println("Stopping")
				smartcar.StopAll()
			},
		})

		shell.AddCmd(&ishell.Cmd{
			Name: "diag",
			Help: "run the motor diagnostics sequence",
			Func: func(c *ishell.Context) {
				smartcar.RunDiagnostics(config.Diagnostics.Step())
			},
		})

		shell.AddCmd(&ishell.Cmd{
			Name: "state",
			Help: "print the last dispatched state",
			Func: func(c *ishell.Context) {
				c.Printf("%+v\n", smartcar.State())
			},
		})

		// Start an instance of the shell so it can be controlled from the CLI
		go shell.Start()
	}

	//---
	// Build the API routes
	//---
	r.Route("/api", func(r chi.Router) {
		// login
		r.Post("/login", Login)

		r.Route("/", func(r chi.Router) {
			// Seek, verify and validate JWT tokens
			r.Use(ValidateJWT)

			r.Get("/refresh_token", JWTRefresh)
		})
	})

	// Add websocket routes
	r.Route("/ws", func(r chi.Router) {
		if ENV.PRODUCTION && !ENV.DEBUG {
			// Enable JWT validation in production
			r.Use(ValidateJWT)
		} else {
			fmt.Println("Running in debug mode. Authentication disabled.")
		}

		r.Get("/drive", DriveSocketHandler)
	})

	// vision system endpoints
	r.Post("/hand-gesture", HandGestureHandler)
	r.Post("/person-tracking", PersonTrackingHandler)

	// add static base routes
	FileServer(r, "/", http.Dir(ENV.HTMLDIR))

	fmt.Println("Listening on port", *port)
	if err := http.ListenAndServe(*port, r); err != nil {
		log.Fatal(err)
	}
}

func openDb(dbFile string) (db *storm.DB, err error) {
	db, err = storm.Open(dbFile)
	if err != nil {
		return
	}

	// call inits for each type
	if err := db.Init(&User{}); err != nil {
		return nil, err
	}

	return
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	fs := http.StripPrefix(path, http.FileServer(root))

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.ServeHTTP(w, r)
	}))
}
