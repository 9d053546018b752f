package service

var ReadLimited = readLimited
