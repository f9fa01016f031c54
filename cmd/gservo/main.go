package main

import (
	"flag"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/caarlos0/env"
	"github.com/tarm/serial"

	"github.com/mastercactapus/gservo/servo"
	"github.com/mastercactapus/gservo/wsbridge"
)

type config struct {
	Port   string `env:"GSERVO_PORT" envDefault:"/dev/ttyUSB0"`
	Baud   int    `env:"GSERVO_BAUD" envDefault:"115200"`
	Bridge string `env:"GSERVO_BRIDGE"`
	Addr   string `env:"GSERVO_ADDR" envDefault:":9092"`
	Dir    string `env:"GSERVO_DATA" envDefault:"./data"`
}

func main() {
	log.SetFlags(log.Lshortfile)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}

	port := flag.String("port", cfg.Port, "Serial port of the controller.")
	baud := flag.Int("baud", cfg.Baud, "Serial baud rate.")
	bridge := flag.String("bridge", cfg.Bridge, "Websocket URL of a remote port bridge (overrides -port).")
	addr := flag.String("addr", cfg.Addr, "Address to bind the gservo server to.")
	dir := flag.String("dir", cfg.Dir, "Program file directory.")
	share := flag.Bool("share", false, "Serve the local port over websocket instead of driving it.")
	flag.Parse()

	var rw io.ReadWriteCloser
	var err error
	if *bridge != "" {
		rw, err = wsbridge.Dial(*bridge)
	} else {
		rw, err = serial.OpenPort(&serial.Config{
			Name:        *port,
			Baud:        *baud,
			ReadTimeout: 250 * time.Millisecond,
		})
	}
	if err != nil {
		log.Fatal("open port: ", err)
	}

	if *share {
		log.Println("Sharing", *port, "on", *addr)
		log.Fatal(http.ListenAndServe(*addr, wsbridge.Handler(rw)))
	}

	s, err := servo.Connect(rw)
	if err != nil {
		log.Fatal("connect: ", err)
	}
	defer s.Close()
	log.Printf("Connected: firmware %d, hardware %d, %d program slots, %d steps max",
		s.FirmwareVersion, s.HardwareVersion, s.MaxPrograms, s.MaxSteps)
	for _, m := range s.Motors() {
		log.Printf("Motor: channel %d address %d (%s)", m.Channel, m.Address, m.Model)
	}

	api := newAPI(s, *dir)

	err = http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		api.ServeHTTP(w, req)
	}))
	if err != nil {
		log.Fatal(err)
	}
}
