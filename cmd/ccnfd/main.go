/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/executor"
)

// Version of CCNFD.
var Version string

func main() {
	var shouldPrintVersion bool
	flag.BoolVar(&shouldPrintVersion, "version", false, "Print version and exit")
	var configFileName string
	flag.StringVar(&configFileName, "config", "/usr/local/etc/ccn/ccnfd.toml", "Configuration file location")
	var disableEthernet bool
	flag.BoolVar(&disableEthernet, "disable-ethernet", false, "Disable Ethernet transports")
	var disableUnix bool
	flag.BoolVar(&disableUnix, "disable-unix", false, "Disable Unix stream transports")
	var logFile string
	flag.StringVar(&logFile, "log-file", "", "Log to the specified file instead of stdout")
	flag.Parse()

	if shouldPrintVersion {
		fmt.Println("CCNFD: Content-Centric Network Forwarding Daemon")
		fmt.Println("Version " + Version)
		fmt.Println("Released under the terms of the MIT License")
		return
	}

	config := executor.CcnfdConfig{
		Version:         Version,
		ConfigFileName:  configFileName,
		DisableEthernet: disableEthernet,
		DisableUnix:     disableUnix,
		LogFile:         logFile,
	}
	ccnfd := executor.NewCcnfd(&config)
	ccnfd.Start()

	// Set up signal handler channel and wait for interrupt
	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
	receivedSig := <-sigChannel
	fmt.Fprintln(os.Stderr, "Received signal", receivedSig, "- exiting")

	ccnfd.Stop()
	core.ShutdownLogger()
}
