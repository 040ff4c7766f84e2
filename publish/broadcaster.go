// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/messagebus"
)

type broadcaster struct {
	log    *logger.L
	socket *zmq.Socket
}

// bind the PUB socket to all broadcast addresses
func (brdc *broadcaster) initialise(bindTo []string) error {
	log := logger.New("broadcaster")
	brdc.log = log

	log.Info("initialising…")

	socket, err := zmq.NewSocket(zmq.PUB)
	if err != nil {
		return err
	}
	_ = socket.SetLinger(0)

	for _, address := range bindTo {
		if address == "" {
			continue
		}
		err = socket.Bind(address)
		if err != nil {
			log.Errorf("bind: %q  error: %s", address, err)
			_ = socket.Close()
			return err
		}
		log.Infof("bind: %q", address)
	}

	brdc.socket = socket
	return nil
}

// Run - wait for events from the message bus and publish them
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}, done chan<- struct{}) {

	log := brdc.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case message := <-messagebus.Chan():
			payload, err := json.Marshal(message.Item)
			if err != nil {
				log.Errorf("marshal %q item error: %s", message.Topic, err)
				continue loop
			}
			_, err = brdc.socket.SendMessage(message.Topic, payload)
			if err != nil {
				log.Errorf("send %q error: %s", message.Topic, err)
			}
			log.Debugf("sent: %q %s", message.Topic, payload)
		}
	}

	_ = brdc.socket.Close()
	log.Info("finished")
	close(done)
}
