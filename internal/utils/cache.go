package utils

import (
	"time"

	"github.com/patrickmn/go-cache"
)

var AuthCache = cache.New(time.Minute*5, time.Second)
