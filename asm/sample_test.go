package asm

// revRam reverses the bits of RX, using RY and RZ as scratch.
const revRam = `
N0: clr RY 
    clr RZ

N1: RX jmp0 N2
    RX jmp1 N3
    jmp NEND

N2: add0 RY
    del RX
    jmp N4

N3: add1 RY
    del RX
    jmp N4

N4: RZ jmp0 N5
    RZ jmp1 N6
    RZ <- RY
    clr RY
    jmp N1

N5: del RZ
    add0 RY
    jmp N4

N6: del RZ
    add1 RY
    jmp N4

NEND: RX <- RZ
      clr RY
      clr RZ
      continue`
