// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Owner          *PoolHandle `namespace:"diamond.owner" database:"state"`
	Selectors      *PoolHandle `namespace:"diamond.selector" database:"state"`
	Modules        *PoolHandle `namespace:"diamond.module" database:"state"`
	ModuleList     *PoolHandle `namespace:"diamond.modulelist" database:"state"`
	Listings       *PoolHandle `namespace:"market.listing" database:"state"`
	ListingIndex   *PoolHandle `namespace:"market.index" database:"index"`
	SellerIndex    *PoolHandle `namespace:"market.seller" database:"index"`
	UserStats      *PoolHandle `namespace:"market.stats" database:"state"`
	Config         *PoolHandle `namespace:"market.config" database:"state"`
	Balances       *PoolHandle `namespace:"ledger.balance" database:"state"`
	TokenOwners    *PoolHandle `namespace:"ledger.token.owner" database:"state"`
	TokenApprovals *PoolHandle `namespace:"ledger.token.approval" database:"state"`
	TestData       *PoolHandle `namespace:"testing.data" database:"state"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentStateDBVersion = 0x100
	currentIndexDBVersion = 0x100
)

// holds the database handles
var poolData struct {
	sync.RWMutex
	dbState  *leveldb.DB
	dbIndex  *leveldb.DB
	trx      Transaction
	stateTrx *leveldb.Batch
	indexTrx *leveldb.Batch
	cache    Cache
}

// Initialise - open up the database connections
//
// this must be called before any pool is accessed
func Initialise(database string) error {
	poolData.Lock()
	defer poolData.Unlock()

	ok := false

	if poolData.dbState != nil {
		return fault.AlreadyInitialised
	}

	defer func() {
		if !ok {
			dbClose()
		}
	}()

	stateDatabase := database + "-state.leveldb"
	indexDatabase := database + "-index.leveldb"

	db, stateVersion, err := getDB(stateDatabase)
	if err != nil {
		return err
	}
	poolData.dbState = db

	// ensure no database downgrade
	if stateVersion > currentStateDBVersion {
		logger.Criticalf("state database version: %d > current version: %d", stateVersion, currentStateDBVersion)
		return fmt.Errorf("state database version: %d > current version: %d", stateVersion, currentStateDBVersion)
	}

	db, indexVersion, err := getDB(indexDatabase)
	if err != nil {
		return err
	}
	poolData.dbIndex = db

	// ensure no database downgrade
	if indexVersion > currentIndexDBVersion {
		logger.Criticalf("index database version: %d > current version: %d", indexVersion, currentIndexDBVersion)
		return fmt.Errorf("index database version: %d > current version: %d", indexVersion, currentIndexDBVersion)
	}

	// database was empty so tag as current version
	if 0 == stateVersion {
		err = putVersion(poolData.dbState, currentStateDBVersion)
		if err != nil {
			return err
		}
	}
	if 0 == indexVersion {
		err = putVersion(poolData.dbIndex, currentIndexDBVersion)
		if err != nil {
			return err
		}
	}

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// databases
	poolData.stateTrx = new(leveldb.Batch)
	poolData.indexTrx = new(leveldb.Batch)
	poolData.cache = newCache()
	stateDBAccess := newDA(poolData.dbState, poolData.stateTrx, poolData.cache)
	indexDBAccess := newDA(poolData.dbIndex, poolData.indexTrx, poolData.cache)
	access := []Access{stateDBAccess, indexDBAccess}
	poolData.trx = newTransaction(access)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		namespaceTag := fieldInfo.Tag.Get("namespace")
		if "" == namespaceTag {
			return fmt.Errorf("pool: %v has invalid namespace: %q", fieldInfo, namespaceTag)
		}

		prefix := NamespacePrefix(namespaceTag)
		limit := namespaceLimit(prefix)

		var dataAccess Access
		switch dbName := fieldInfo.Tag.Get("database"); dbName {
		case "state":
			dataAccess = stateDBAccess
		case "index":
			dataAccess = indexDBAccess
		default:
			return fmt.Errorf("pool: %v has invalid database: %q", fieldInfo, dbName)
		}

		p := &PoolHandle{
			prefix:     prefix,
			limit:      limit,
			dataAccess: dataAccess,
		}

		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	ok = true // prevent db close
	return nil
}

func dbClose() {
	if poolData.dbIndex != nil {
		poolData.dbIndex.Close()
		poolData.dbIndex = nil
	}
	if poolData.dbState != nil {
		poolData.dbState.Close()
		poolData.dbState = nil
	}
}

// Finalise - close the database connections
func Finalise() {
	poolData.Lock()
	dbClose()
	poolData.Unlock()
}

// return:
//   database handle
//   version number
func getDB(name string) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}

	db, err := leveldb.OpenFile(name, opt)
	if err != nil {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if err != nil {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// NewDBTransaction - begin the single shared transaction
func NewDBTransaction() (Transaction, error) {
	poolData.RLock()
	defer poolData.RUnlock()

	if poolData.dbState == nil {
		return nil, fault.DatabaseIsNotSet
	}
	err := poolData.trx.Begin()
	if err != nil {
		return nil, err
	}
	return poolData.trx, nil
}
