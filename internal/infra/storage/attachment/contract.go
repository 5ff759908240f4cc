package attachment

import "github.com/m04kA/FestAccommodationService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
