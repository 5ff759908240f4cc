package user

import "github.com/m04kA/FestAccommodationService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
